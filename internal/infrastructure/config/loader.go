package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// GameFile is the name of the main config file.
const GameFile = "game.yaml"

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadGame loads and validates game.yaml
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, GameFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", GameFile, err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", GameFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", GameFile, err)
	}

	return &cfg, nil
}

// LoadLevel loads a Tiled JSON map, e.g. "levels/level1.json"
func (l *Loader) LoadLevel(name string) (*TiledMap, error) {
	data, err := fs.ReadFile(l.fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	var m TiledMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}

	return &m, nil
}
