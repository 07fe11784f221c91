//go:build linux

package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMeminfoRunner_MapsLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meminfo")
	content := `MemTotal:       16307664 kB
MemFree:         1000000 kB
AnonPages:       4194304 kB
Unevictable:       65536 kB
SwapTotal:       4000000 kB
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := meminfoRunner{path: path}.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counters := Parse(out)
	pageSize := uint64(os.Getpagesize())

	if got, want := counters["Anonymous pages"], 4194304*1024/pageSize; got != want {
		t.Errorf("Anonymous pages: got %d, want %d", got, want)
	}
	if got, want := counters["Pages wired down"], 65536*1024/pageSize; got != want {
		t.Errorf("Pages wired down: got %d, want %d", got, want)
	}
	if _, ok := counters["MemTotal"]; ok {
		t.Error("unmapped meminfo fields should not leak into the report")
	}
}

func TestMeminfoRunner_MissingFile(t *testing.T) {
	_, err := meminfoRunner{path: "/does/not/exist"}.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for missing meminfo file")
	}
}
