// Package project locates and loads ndca.toml, the manifest describing a
// rule project: its name, the rule file to run, and the cell state count.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "ndca.toml"

// Manifest is a loaded ndca.toml plus its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the ndca.toml layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Rule    RuleConfig    `toml:"rule"`
}

// PackageConfig is the [package] table.
type PackageConfig struct {
	Name string `toml:"name"`
}

// RuleConfig is the [rule] table. States is optional and defaults to the
// driver's state count when zero.
type RuleConfig struct {
	Main   string `toml:"main"`
	States int    `toml:"states"`
}

// Find walks up from startDir to locate ndca.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest governing startDir. ok is false when
// no manifest exists anywhere up the tree.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parseFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func parseFile(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("rule", "main") || strings.TrimSpace(cfg.Rule.Main) == "" {
		return Config{}, fmt.Errorf("%s: missing [rule].main", path)
	}
	if meta.IsDefined("rule", "states") && (cfg.Rule.States < 1 || cfg.Rule.States > 256) {
		return Config{}, fmt.Errorf("%s: [rule].states must be in 1..256", path)
	}
	return cfg, nil
}

// MainPath resolves the manifest's rule file relative to the project root.
func (m *Manifest) MainPath() (string, error) {
	mainRel := strings.TrimSpace(m.Config.Rule.Main)
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [rule].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [rule].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [rule].main must be a .ndca file, not a directory", m.Path)
	}
	if filepath.Ext(mainPath) != ".ndca" {
		return "", fmt.Errorf("%s: [rule].main must be a .ndca file", m.Path)
	}
	return mainPath, nil
}
