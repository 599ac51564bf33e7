package main

import (
	"os"
	"path/filepath"
	"testing"

	"ndca/internal/driver"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveRuleTarget_ExplicitArgument(t *testing.T) {
	chdir(t, t.TempDir())

	target, err := resolveRuleTarget([]string{"some/rule.ndca"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if target.Path != "some/rule.ndca" {
		t.Errorf("path = %q", target.Path)
	}
	if target.StateCount != driver.DefaultStateCount {
		t.Errorf("states = %d, want default %d", target.StateCount, driver.DefaultStateCount)
	}
}

func TestResolveRuleTarget_ManifestFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ndca.toml"), "[package]\nname = \"demo\"\n[rule]\nmain = \"life.ndca\"\nstates = 64\n")
	writeFile(t, filepath.Join(dir, "life.ndca"), "@transition { become #0 }\n")
	chdir(t, dir)

	target, err := resolveRuleTarget(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(target.Path) != "life.ndca" {
		t.Errorf("path = %q", target.Path)
	}
	if target.StateCount != 64 {
		t.Errorf("states = %d, want 64 from manifest", target.StateCount)
	}
}

func TestResolveRuleTarget_FlagBeatsManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ndca.toml"), "[package]\nname = \"demo\"\n[rule]\nmain = \"life.ndca\"\nstates = 64\n")
	writeFile(t, filepath.Join(dir, "life.ndca"), "@transition { become #0 }\n")
	chdir(t, dir)

	target, err := resolveRuleTarget(nil, 32)
	if err != nil {
		t.Fatal(err)
	}
	if target.StateCount != 32 {
		t.Errorf("states = %d, want flag value 32", target.StateCount)
	}
}

func TestResolveRuleTarget_NoManifestNoArg(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := resolveRuleTarget(nil, 0); err == nil {
		t.Error("want an error pointing at the missing manifest")
	}
}

func TestResolveRuleTarget_InvalidStatesFlag(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := resolveRuleTarget([]string{"rule.ndca"}, 300); err == nil {
		t.Error("states above 256 must be rejected")
	}
}
