package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFlattenYAMLAndLoadKeys(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "test.yaml")
	src := "top:\n  sub: value\nflat.key: v\n"
	if err := os.WriteFile(p, []byte(src), 0600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	got, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale failed: %v", err)
	}
	for _, k := range []string{"top.sub", "flat.key"} {
		if _, ok := got[k]; !ok {
			t.Fatalf("expected key %q, got %v", k, got)
		}
	}
}

func TestLint_Synthetic(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "pkg", "a.go"), `package pkg
func f() {
	_ = i18n.T("used.key")
	_ = i18n.T("undefined.key", 1)
}`)
	mustWrite(t, filepath.Join(root, "_skip", "b.go"), `package skip
func g() { _ = i18n.T("ignored.key") }`)
	mustWrite(t, filepath.Join(root, localesDir, "en.yaml"), "used.key: a\norphan.key: b\n")
	mustWrite(t, filepath.Join(root, localesDir, "de.yaml"), "orphan.key: b\n")

	r, err := lint(root)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(r.Undefined) != 1 || r.Undefined[0] != "undefined.key" {
		t.Fatalf("unexpected undefined keys: %v", r.Undefined)
	}
	if got := r.Missing["de.yaml"]; len(got) != 1 || got[0] != "used.key" {
		t.Fatalf("unexpected missing keys: %v", got)
	}
	if len(r.Orphaned) != 1 || r.Orphaned[0] != "orphan.key" {
		t.Fatalf("unexpected orphaned keys: %v", r.Orphaned)
	}
	if !r.failed() {
		t.Fatalf("expected failure")
	}
}

// The shipped locales must cover every key the code asks for.
func TestLint_Repository(t *testing.T) {
	r, err := lint(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(r.Undefined) > 0 {
		t.Fatalf("keys used but not defined: %v", r.Undefined)
	}
	for f, keys := range r.Missing {
		if len(keys) > 0 {
			t.Fatalf("%s lacks keys: %v", f, keys)
		}
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}
