package app

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestFileHelper_IsValidProfileFile(t *testing.T) {
	h := NewFileHelper()

	cases := map[string]bool{
		"sample.profile": true,
		"sample.tsv":     true,
		"sample.txt":     true,
		"sample.csv":     false,
		"sample":         false,
	}
	for name, want := range cases {
		if got := h.IsValidProfileFile(name); got != want {
			t.Errorf("IsValidProfileFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFileHelper_FileExists(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	existing := filepath.Join(tempDir, "a.profile")
	writeFile(t, existing, "p1 1.0 2.0\n")

	ok, err := h.FileExists(existing)
	if err != nil || !ok {
		t.Errorf("expected existing file to be found, got ok=%v err=%v", ok, err)
	}

	ok, err = h.FileExists(filepath.Join(tempDir, "missing.profile"))
	if err != nil || ok {
		t.Errorf("expected missing file to report false, got ok=%v err=%v", ok, err)
	}
}

func TestFileHelper_CollectProfileFiles_NonRecursive(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	writeFile(t, filepath.Join(tempDir, "a.profile"), "p1 1.0\n")
	writeFile(t, filepath.Join(tempDir, "b.tsv"), "p2 2.0\n")
	writeFile(t, filepath.Join(tempDir, "c.csv"), "ignored\n")
	writeFile(t, filepath.Join(tempDir, "nested", "d.profile"), "p3 3.0\n")

	files, err := h.CollectProfileFiles([]string{tempDir}, false, nil)
	if err != nil {
		t.Fatalf("CollectProfileFiles error = %v", err)
	}

	names := baseNames(files)
	sort.Strings(names)
	want := []string{"a.profile", "b.tsv"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestFileHelper_CollectProfileFiles_Recursive(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	writeFile(t, filepath.Join(tempDir, "a.profile"), "p1 1.0\n")
	writeFile(t, filepath.Join(tempDir, "nested", "d.profile"), "p3 3.0\n")

	files, err := h.CollectProfileFiles([]string{tempDir}, true, nil)
	if err != nil {
		t.Fatalf("CollectProfileFiles error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestFileHelper_CollectProfileFiles_HonorsGitignore(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	writeFile(t, filepath.Join(tempDir, ".gitignore"), "skip.profile\n")
	writeFile(t, filepath.Join(tempDir, "keep.profile"), "p1 1.0\n")
	writeFile(t, filepath.Join(tempDir, "skip.profile"), "p2 2.0\n")

	files, err := h.CollectProfileFiles([]string{tempDir}, true, nil)
	if err != nil {
		t.Fatalf("CollectProfileFiles error = %v", err)
	}

	names := baseNames(files)
	for _, n := range names {
		if n == "skip.profile" {
			t.Errorf("expected skip.profile to be excluded via .gitignore, got %v", names)
		}
	}
}

func TestFileHelper_CollectProfileFiles_ExcludePattern(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	writeFile(t, filepath.Join(tempDir, "keep.profile"), "p1 1.0\n")
	writeFile(t, filepath.Join(tempDir, "skip.profile"), "p2 2.0\n")

	files, err := h.CollectProfileFiles([]string{tempDir}, false, []string{"skip.profile"})
	if err != nil {
		t.Fatalf("CollectProfileFiles error = %v", err)
	}

	names := baseNames(files)
	if len(names) != 1 || names[0] != "keep.profile" {
		t.Errorf("expected only keep.profile, got %v", names)
	}
}

func TestResolveFilePaths_AllFiles(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	f1 := filepath.Join(tempDir, "a.profile")
	writeFile(t, f1, "p1 1.0\n")

	resolved, err := ResolveFilePaths(h, []string{f1}, false, nil)
	if err != nil {
		t.Fatalf("ResolveFilePaths error = %v", err)
	}
	if len(resolved) != 1 || resolved[0] != f1 {
		t.Errorf("expected [%s], got %v", f1, resolved)
	}
}

func TestResolveFilePaths_Directory(t *testing.T) {
	tempDir := t.TempDir()
	h := NewFileHelper()

	writeFile(t, filepath.Join(tempDir, "a.profile"), "p1 1.0\n")

	resolved, err := ResolveFilePaths(h, []string{tempDir}, false, nil)
	if err != nil {
		t.Fatalf("ResolveFilePaths error = %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved file, got %d", len(resolved))
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
