package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/starford/sift/internal/apperr"
	"github.com/starford/sift/internal/checksum"
)

func tempCorpus(t *testing.T) (string, *FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir, []string{".txt", "md", ".HTML"})
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return dir, fs
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFS_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	_ = os.WriteFile(file, []byte("x"), 0o644)
	if _, err := NewFS(file, nil); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestReadReturnsContent(t *testing.T) {
	root, s := tempCorpus(t)
	writeFile(t, root, "a/b/doc.txt", "deep")
	got, err := s.Read("a/b/doc.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestListFiltersExtensions(t *testing.T) {
	root, s := tempCorpus(t)
	writeFile(t, root, "one.txt", "1")
	writeFile(t, root, "two.md", "2")
	writeFile(t, root, "sub/three.html", "3")
	writeFile(t, root, "skip.pdf", "4")
	writeFile(t, root, ".git/config.txt", "hidden")

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	sort.Strings(paths)
	want := []string{"one.txt", "sub/three.html", "two.md"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListChecksum(t *testing.T) {
	root, s := tempCorpus(t)
	writeFile(t, root, "c.txt", "checksum me")
	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("expected 1 file, got %d", len(metas))
	}
	if metas[0].Checksum != checksum.Sum([]byte("checksum me")) {
		t.Errorf("checksum = %q", metas[0].Checksum)
	}
}

func TestPathTraversalBlocked(t *testing.T) {
	_, s := tempCorpus(t)
	_, err := s.Read("../../../etc/passwd")
	if !errors.Is(err, apperr.ErrOutsideCorpus) {
		t.Fatalf("err = %v, want ErrOutsideCorpus", err)
	}
}

func TestAccepts(t *testing.T) {
	_, s := tempCorpus(t)
	cases := map[string]bool{
		"a.txt":      true,
		"b.MD":       true,
		"c.html":     true,
		"d.pdf":      false,
		"noext":      false,
		"dir/e.Html": true,
	}
	for p, want := range cases {
		if got := s.Accepts(p); got != want {
			t.Errorf("Accepts(%q) = %v, want %v", p, got, want)
		}
	}
}
