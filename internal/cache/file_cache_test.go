package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

type testSummary struct {
	Scene string  `json:"scene"`
	Mean  float64 `json:"mean"`
}

func TestFileCacheRoundTrip(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[testSummary]("summary_cache")
	key := fc.GenerateKey("HLS.S30.T11SKD.2022286T184329.v2.0", 1234)

	want := testSummary{Scene: "HLS.S30.T11SKD.2022286T184329.v2.0", Mean: 0.42}
	if err := fc.Set(key, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := fc.Get(key)
	if !ok {
		t.Fatal("Get missed a freshly written entry")
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestFileCacheMissingKey(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[testSummary]("summary_cache")
	if _, ok := fc.Get("nope"); ok {
		t.Error("Get hit on a key that was never set")
	}
}

func TestFileCacheRejectsTamperedEntry(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	fc := NewFileCache[testSummary]("summary_cache")
	key := fc.GenerateKey("scene")
	if err := fc.Set(key, testSummary{Scene: "scene", Mean: 0.1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cacheFile := filepath.Join(root, "data", "summary_cache", key+".json")
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		t.Fatal(err)
	}
	tampered := bytes.Replace(data, []byte(`"mean":0.1`), []byte(`"mean":0.9`), 1)
	if bytes.Equal(tampered, data) {
		t.Fatal("tamper target not found in cache entry")
	}
	if err := os.WriteFile(cacheFile, tampered, 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := fc.Get(key); ok {
		t.Error("Get hit on a tampered entry")
	}
}

func TestGenerateKeyIsStable(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[testSummary]("summary_cache")
	if fc.GenerateKey("a", 1) != fc.GenerateKey("a", 1) {
		t.Error("same params produced different keys")
	}
	if fc.GenerateKey("a", 1) == fc.GenerateKey("a", 2) {
		t.Error("different params produced the same key")
	}
}
