// Package kcache is a disk-resident cache of previously checked
// top-level definitions, keyed by a content hash so an unchanged
// definition never has to be re-checked across process runs.
package kcache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"kindkernel/internal/term"
)

// schemaVersion guards the on-disk payload format; bump it whenever
// Entry's shape changes so stale caches are invalidated rather than
// misread.
const schemaVersion uint16 = 1

// Digest is a content hash over a definition's name and its
// structural term hash, used both as the cache key and as the
// staleness check once an entry is read back.
type Digest [32]byte

// Entry is what survives a round trip through the cache. It does not
// carry the checked term itself: like the definition it mirrors, a
// checked type is only useful once re-associated with a live
// *check.Session (its holes, its reduce.Session, its definition table),
// so the cache stores the type rendered to text for fast display and a
// structural hash for a cheap staleness check, not a reloadable tree.
type Entry struct {
	Schema     uint16
	Name       string
	Content    Digest
	TypeHash   uint64
	TypeText   string
	Erased     bool
	Broken     bool
	Diagnostic string // non-empty only when Broken
}

// NewEntry builds a cache entry from a successfully checked definition.
func NewEntry(name string, content Digest, typ *term.Term, erased bool) Entry {
	return Entry{
		Schema:   schemaVersion,
		Name:     name,
		Content:  content,
		TypeHash: term.Hash(typ),
		TypeText: term.Render(typ),
		Erased:   erased,
	}
}

// NewBrokenEntry records that name failed to check, so a repeated run
// over an unchanged source can skip straight to reporting the same
// failure instead of re-running the checker.
func NewBrokenEntry(name string, content Digest, diagnostic string) Entry {
	return Entry{
		Schema:     schemaVersion,
		Name:       name,
		Content:    content,
		Broken:     true,
		Diagnostic: diagnostic,
	}
}

// Cache is a thread-safe, msgpack-encoded disk cache rooted at dir.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache at the standard XDG cache location for app,
// creating the directory if needed.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenAt opens (creating if needed) a cache rooted at an explicit
// directory, bypassing the XDG lookup; mainly for tests and the
// --cache-dir flag.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the root directory this cache is rooted at.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "defs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes an entry under key.
func (c *Cache) Put(key Digest, entry Entry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads back the entry stored under key, if any. The second return
// value is false both when the entry is missing and when it was written
// under a schema this build no longer understands.
func (c *Cache) Get(key Digest) (Entry, bool, error) {
	var out Entry
	if c == nil {
		return out, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, false, nil
		}
		return out, false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return Entry{}, false, err
	}
	if out.Schema != schemaVersion {
		return Entry{}, false, nil
	}
	return out, true, nil
}

// DropAll invalidates the entire cache by renaming it aside and
// removing the renamed copy, so a concurrent reader mid-Get never sees
// a half-deleted directory.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
