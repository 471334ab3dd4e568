package kcache

import (
	"testing"

	"kindkernel/internal/term"
)

func digestOf(b byte) Digest {
	var d Digest
	d[0] = b
	return d
}

func TestPutGetRoundTrips(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := digestOf(1)
	entry := NewEntry("id", key, term.NewAll("x", term.NewTyp(), term.NewTyp(), false), false)

	if err := c.Put(key, entry); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if got.Name != "id" || got.TypeText != entry.TypeText || got.TypeHash != entry.TypeHash {
		t.Fatalf("entry changed across the round trip: got %+v", got)
	}
}

func TestGetMissReportsNoHit(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, ok, err := c.Get(digestOf(9))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected a cache miss on an empty cache")
	}
}

func TestBrokenEntryRecordsDiagnostic(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := digestOf(2)
	entry := NewBrokenEntry("bad", key, "type mismatch")
	if err := c.Put(key, entry); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || !got.Broken || got.Diagnostic != "type mismatch" {
		t.Fatalf("expected a broken entry to round trip, got %+v (ok=%v)", got, ok)
	}
}

func TestDropAllClearsEntries(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := digestOf(3)
	if err := c.Put(key, NewEntry("x", key, term.NewTyp(), false)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("drop all: %v", err)
	}
	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("get after drop: %v", err)
	}
	if ok {
		t.Fatalf("expected no entry to survive DropAll")
	}
}
