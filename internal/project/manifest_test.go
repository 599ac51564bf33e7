package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_FindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ndca.toml"), `
[package]
name = "demo"

[rule]
main = "rules/life.ndca"
states = 100
`)
	nested := filepath.Join(root, "rules", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	if m.Config.Rule.States != 100 {
		t.Errorf("states = %d", m.Config.Rule.States)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
}

func TestLoad_NoManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("should report no manifest")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing package name", "[rule]\nmain = \"x.ndca\"\n"},
		{"missing rule main", "[package]\nname = \"demo\"\n"},
		{"states out of range", "[package]\nname = \"demo\"\n[rule]\nmain = \"x.ndca\"\nstates = 300\n"},
		{"states zero", "[package]\nname = \"demo\"\n[rule]\nmain = \"x.ndca\"\nstates = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "ndca.toml"), tt.content)
			if _, _, err := Load(dir); err == nil {
				t.Error("want validation error")
			}
		})
	}
}

func TestMainPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ndca.toml"), "[package]\nname = \"demo\"\n[rule]\nmain = \"life.ndca\"\n")
	writeFile(t, filepath.Join(root, "life.ndca"), "@transition { become #0 }\n")

	m, ok, err := Load(root)
	if err != nil || !ok {
		t.Fatalf("Load: %v ok=%v", err, ok)
	}
	got, err := m.MainPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(root, "life.ndca") {
		t.Errorf("main = %q", got)
	}
}

func TestMainPath_WrongExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ndca.toml"), "[package]\nname = \"demo\"\n[rule]\nmain = \"life.txt\"\n")
	writeFile(t, filepath.Join(root, "life.txt"), "x")

	m, _, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MainPath(); err == nil {
		t.Error("non-.ndca main should be rejected")
	}
}
