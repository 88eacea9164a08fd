package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBMP(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, encodeBMP(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTextureCacheSharesByPath(t *testing.T) {
	rec := &uploadRecorder{}
	tc := NewTextureCache(rec)
	path := writeBMP(t, "a.bmp")

	first, err := tc.Load(0, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := tc.Load(0, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Fatalf("expected shared texture, got %d and %d", first, second)
	}
	if rec.next != 1 {
		t.Errorf("expected one texture created, got %d", rec.next)
	}
	stats := tc.Stats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 || stats.Active != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	tc.Release(first)
	if len(rec.deleted) != 0 {
		t.Fatalf("texture freed while still referenced")
	}
	tc.Release(first)
	if len(rec.deleted) != 1 || rec.deleted[0] != first {
		t.Fatalf("expected %d freed, got %v", first, rec.deleted)
	}
	if tc.Stats().Active != 0 {
		t.Errorf("expected no active textures")
	}

	again, err := tc.Load(0, path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again == first {
		t.Errorf("expected a fresh handle after release")
	}
}

func TestTextureCacheMissingFile(t *testing.T) {
	tc := NewTextureCache(&uploadRecorder{})
	if _, err := tc.Load(0, filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected an error")
	}
	if tc.Stats().Active != 0 {
		t.Errorf("failed load must not be cached")
	}
}

func TestTextureCacheReleaseUnknown(t *testing.T) {
	rec := &uploadRecorder{}
	tc := NewTextureCache(rec)
	tc.Release(42)
	if len(rec.deleted) != 0 {
		t.Errorf("unknown texture must not be freed")
	}
}
