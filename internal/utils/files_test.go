package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFileReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := SafeWriteFile(path, []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := SafeWriteFile(path, []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "two" {
		t.Fatalf("expected replaced content, got %q", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should not remain, stat err=%v", err)
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := SafeWriteFile(path, []byte("x")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"Legal": 2})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "\n  \"Legal\": 2") {
		t.Fatalf("expected indented json, got %s", b)
	}
	if _, err := PrettyJSON(make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cases := map[string]string{
		"":                  "",
		"~":                 home,
		"~/cfg/config.yaml": filepath.Join(home, "cfg", "config.yaml"),
		"/etc/sectorlens":   "/etc/sectorlens",
		"~other/x":          "~other/x",
	}
	for in, want := range cases {
		if got := ExpandHome(in); got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
