package complete

import "testing"

func TestSplice(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		trigger int
		snap    Snapshot
		label   string
		want    Snapshot
	}{
		{
			name:  "slash replaces everything",
			mode:  ModeSlash,
			snap:  Snapshot{Text: "/worktree st", Cursor: 12},
			label: "/worktree start",
			want:  Snapshot{Text: "/worktree start", Cursor: 15},
		},
		{
			name:  "path replaces last segment",
			mode:  ModePath,
			snap:  Snapshot{Text: "@src/fo", Cursor: 7},
			label: "foo.py",
			want:  Snapshot{Text: "@src/foo.py", Cursor: 11},
		},
		{
			name:  "path without slash replaces after at",
			mode:  ModePath,
			snap:  Snapshot{Text: "@fi", Cursor: 3},
			label: "file1.txt",
			want:  Snapshot{Text: "@file1.txt", Cursor: 10},
		},
		{
			name:    "text around the reference is kept",
			mode:    ModePath,
			trigger: 4,
			snap:    Snapshot{Text: "see @src/fo and more", Cursor: 11},
			label:   "foo.py",
			want:    Snapshot{Text: "see @src/foo.py and more", Cursor: 15},
		},
		{
			name:  "cursor zero means end of text",
			mode:  ModePath,
			snap:  Snapshot{Text: "@a/b", Cursor: 0},
			label: "bin/",
			want:  Snapshot{Text: "@a/bin/", Cursor: 7},
		},
		{
			name:  "empty segment after slash",
			mode:  ModePath,
			snap:  Snapshot{Text: "@src/", Cursor: 5},
			label: "main.go",
			want:  Snapshot{Text: "@src/main.go", Cursor: 12},
		},
		{
			name:  "no mode leaves buffer alone",
			mode:  ModeNone,
			snap:  Snapshot{Text: "abc", Cursor: 1},
			label: "x",
			want:  Snapshot{Text: "abc", Cursor: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Splice(tt.mode, tt.trigger, tt.snap, tt.label)
			if got != tt.want {
				t.Errorf("Splice = %+v, want %+v", got, tt.want)
			}
		})
	}
}
