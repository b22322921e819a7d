package cache

import (
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultDirsSize is the number of directory listings kept by default.
const DefaultDirsSize = 100

// Dirs is a bounded least-recently-used cache of directory listings, keyed
// by absolute directory path. A hit promotes the entry; a full cache evicts
// the least recently used listing.
//
// Listings are never invalidated when the filesystem changes. Dirs is safe
// for concurrent use, so several completion sessions may share one.
type Dirs struct {
	lru  *lru.Cache[string, []Entry]
	read func(string) ([]Entry, error)
}

// NewDirs creates a directory cache holding at most size listings.
func NewDirs(size int) (*Dirs, error) {
	c, err := lru.New[string, []Entry](size)
	if err != nil {
		return nil, fmt.Errorf("directory cache: %w", err)
	}
	return &Dirs{lru: c, read: ReadDir}, nil
}

// Get returns the cached listing for dir and promotes it.
func (d *Dirs) Get(dir string) ([]Entry, bool) {
	return d.lru.Get(key(dir))
}

// Put stores a listing, evicting the least recently used one when full.
// It reports whether an eviction happened.
func (d *Dirs) Put(dir string, entries []Entry) bool {
	return d.lru.Add(key(dir), entries)
}

// Load returns the listing for dir, reading the filesystem on a miss.
// Failed reads are not cached.
func (d *Dirs) Load(dir string) ([]Entry, error) {
	k := key(dir)
	if entries, ok := d.lru.Get(k); ok {
		return entries, nil
	}
	entries, err := d.read(k)
	if err != nil {
		return nil, err
	}
	d.lru.Add(k, entries)
	return entries, nil
}

// Len returns the number of cached listings.
func (d *Dirs) Len() int {
	return d.lru.Len()
}

// Keys returns the cached directories from least to most recently used.
func (d *Dirs) Keys() []string {
	return d.lru.Keys()
}

// Purge drops every cached listing.
func (d *Dirs) Purge() {
	d.lru.Purge()
}

func key(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}
