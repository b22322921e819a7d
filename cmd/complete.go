package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/samsaffron/term-complete/internal/complete"
	"github.com/samsaffron/term-complete/internal/config"
	"github.com/samsaffron/term-complete/internal/ui"
	"github.com/spf13/cobra"
)

var (
	completeCursor int
	completeAccept bool
	completeJSON   bool
)

var completeCmd = &cobra.Command{
	Use:   "complete TEXT",
	Short: "Print completions for TEXT without the interactive prompt",
	Long: `Run the completion engine once against TEXT and print the ranked
candidates, one per line. With --accept the top candidate is committed and
the resulting buffer is printed instead.

The cursor is a byte offset into TEXT; 0 (the default) means the end.

Examples:
  term-complete complete "/wo"
  term-complete complete "see @internal/co"
  term-complete complete --accept "see @REA"
  term-complete complete --json --cursor 5 "@src/ and more"`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().IntVar(&completeCursor, "cursor", 0, "Cursor byte offset into TEXT (0 means end of text)")
	completeCmd.Flags().BoolVar(&completeAccept, "accept", false, "Commit the top candidate and print the buffer")
	completeCmd.Flags().BoolVar(&completeJSON, "json", false, "Print JSON instead of text")
	rootCmd.AddCommand(completeCmd)
}

// completionResult is what one run of the engine produced.
type completionResult struct {
	Mode     string          `json:"mode"`
	Search   string          `json:"search"`
	Items    []candidateJSON `json:"items"`
	Accepted *snapshotJSON   `json:"accepted,omitempty"`

	ranked []complete.RankedCandidate
}

type candidateJSON struct {
	Label     string  `json:"label"`
	Kind      string  `json:"kind"`
	Container bool    `json:"container,omitempty"`
	Score     float64 `json:"score"`
	Matched   []int   `json:"matched,omitempty"`
}

type snapshotJSON struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
	// Open is set when accepting a directory left completion open.
	Open bool `json:"open"`
}

// bufferEditor is the stand-in host buffer for one-shot completion.
type bufferEditor struct {
	text   string
	cursor int
}

func (b *bufferEditor) SetBuffer(text string, cursor int) {
	b.text, b.cursor = text, cursor
}

func runComplete(cmd *cobra.Command, args []string) error {
	res, err := completeText(cfg.Complete, args[0], completeCursor, completeAccept, logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if completeJSON {
		return printCompletionJSON(out, res)
	}
	return printCompletion(out, stylesFor(out), res)
}

// completeText runs detection once and optionally accepts the top candidate.
func completeText(cc config.CompleteConfig, text string, cursor int, accept bool, logger *slog.Logger) (*completionResult, error) {
	buf := &bufferEditor{}
	ctrl, err := complete.New(buf, complete.Options{
		Commands:  cc.Commands,
		BasePath:  cc.BasePath,
		Ignore:    cc.Ignore,
		CacheSize: cc.CacheSize,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	ctrl.Update(complete.Snapshot{Text: text, Cursor: cursor})

	res := &completionResult{
		Mode:   ctrl.State().Mode.String(),
		Search: ctrl.Search(),
		ranked: ctrl.Items(),
	}
	for _, it := range res.ranked {
		res.Items = append(res.Items, candidateJSON{
			Label:     it.Candidate.Label,
			Kind:      it.Candidate.Kind.String(),
			Container: it.Candidate.Container,
			Score:     it.Score,
			Matched:   it.Matched,
		})
	}

	if accept {
		snap, err := ctrl.Accept()
		if err != nil {
			return nil, fmt.Errorf("cannot complete %q: %w", text, err)
		}
		res.Accepted = &snapshotJSON{Text: snap.Text, Cursor: snap.Cursor, Open: ctrl.Visible()}
	}
	return res, nil
}

func printCompletion(w io.Writer, styles *ui.Styles, res *completionResult) error {
	if res.Accepted != nil {
		_, err := fmt.Fprintln(w, res.Accepted.Text)
		return err
	}
	for _, it := range res.ranked {
		var label strings.Builder
		for _, seg := range it.Segments() {
			if seg.Match {
				label.WriteString(styles.Match.Render(seg.Text))
			} else {
				label.WriteString(seg.Text)
			}
		}
		if _, err := fmt.Fprintf(w, "%s%s\t%.2f\n", it.Candidate.Prefix, label.String(), it.Score); err != nil {
			return err
		}
	}
	return nil
}

func printCompletionJSON(w io.Writer, res *completionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// stylesFor highlights matches only when w is a terminal.
func stylesFor(w io.Writer) *ui.Styles {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return ui.NewStyles(w, themeFromConfig(cfg.Theme))
	}
	return ui.PlainStyles(w)
}
