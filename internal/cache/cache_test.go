package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("https://api.tiingo.com/tiingo/daily/jpm/prices?token=secret")
	b := Key("https://api.tiingo.com/tiingo/daily/bac/prices?token=secret")

	if !strings.HasPrefix(a, keyPrefix) {
		t.Errorf("key %q missing prefix", a)
	}
	if a == b {
		t.Error("different URLs produced the same key")
	}
	if strings.Contains(a, "secret") {
		t.Error("key leaks query string")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	_ = c.Set("k", []byte("body"), 0)
	if v, ok := c.Get("k"); !ok || string(v) != "body" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}
	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("hit after Delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set(Key("fresh"), []byte("fresh"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(Key("stale"), []byte("stale"), -time.Second); err != nil {
		t.Fatal(err)
	}

	if v, ok := c.Get(Key("fresh")); !ok || string(v) != "fresh" {
		t.Errorf("fresh entry: %q, %v", v, ok)
	}
	if _, ok := c.Get(Key("stale")); ok {
		t.Error("expired entry returned")
	}
}

func TestDiskCache_Prune(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	_ = c.Set("a", []byte("a"), 0)
	_ = c.Set("b", []byte("b"), -time.Second)
	if err := os.WriteFile(filepath.Join(dir, "broken"+entryExt), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := c.Prune()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("expected 2 pruned entries, got %d", removed)
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("fresh entry pruned")
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("non-cache file removed")
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestDiskCache_MissingDir(t *testing.T) {
	c := NewDiskCache(filepath.Join(t.TempDir(), "absent"), time.Hour)
	if n, err := c.Prune(); err != nil || n != 0 {
		t.Errorf("Prune on missing dir = %d, %v", n, err)
	}
	if err := c.Delete("nothing"); err != nil {
		t.Errorf("Delete of missing entry: %v", err)
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	first := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := first.Set(Key("u"), []byte("page"), 0); err != nil {
		t.Fatal(err)
	}

	// a fresh process sees only the disk layer
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	if v, ok := second.Get(Key("u")); !ok || string(v) != "page" {
		t.Fatalf("Get from disk = %q, %v", v, ok)
	}
	if second.memory.Len() != 1 {
		t.Error("disk hit was not promoted to memory")
	}
}
