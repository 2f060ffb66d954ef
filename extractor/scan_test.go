package extractor

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.png"))
	touch(t, filepath.Join(root, "a.jpg"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "c.gif"))

	flat, err := ListFiles(root, false, ImageSuffixes...)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	want := []string{filepath.Join(root, "a.jpg"), filepath.Join(root, "b.png")}
	if !reflect.DeepEqual(flat, want) {
		t.Fatalf("flat = %v, want %v", flat, want)
	}

	deep, err := ListFiles(root, true, ImageSuffixes...)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(deep) != 3 || deep[2] != filepath.Join(root, "sub", "c.gif") {
		t.Fatalf("recursive = %v", deep)
	}

	all, err := ListFiles(root, false)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered = %v", all)
	}

	single, err := ListFiles(filepath.Join(root, "notes.txt"), true, ImageSuffixes...)
	if err != nil || len(single) != 1 {
		t.Fatalf("file root = %v, %v", single, err)
	}

	if _, err := ListFiles(filepath.Join(root, "missing"), false); !os.IsNotExist(err) {
		t.Fatalf("missing root err = %v", err)
	}
}

func TestReferenceName(t *testing.T) {
	cases := map[string]string{
		"/refs/cat.orb.descr":       "cat",
		"/refs/dog.sift.descr":      "dog",
		"refs/box.jpg":              "box.jpg",
		"plain.descr":               "plain",
		"/refs/x.y.akaze.descr.bak": "x.y",
	}
	for in, want := range cases {
		if got := ReferenceName(in); got != want {
			t.Fatalf("ReferenceName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	if got := LongestCommonPrefix([]string{"/a/b/c.jpg", "/a/b/d.jpg", "/a/bx.jpg"}); got != "/a/b" {
		t.Fatalf("prefix = %q", got)
	}
	if got := LongestCommonPrefix(nil); got != "" {
		t.Fatalf("empty prefix = %q", got)
	}
	if got := LongestCommonPrefix([]string{"/only/one.png"}); got != "/only/one.png" {
		t.Fatalf("single prefix = %q", got)
	}
}
