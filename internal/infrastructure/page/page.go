// Package page renders the HTML page that hosts the WebAssembly build. The
// page only loads the game into #game-container; every menu is a scene.
package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed templates/game.html.tmpl
var defaultTemplate string

// DefaultTemplate returns the built-in page template.
func DefaultTemplate() string {
	return defaultTemplate
}

// Data fills the page template.
type Data struct {
	Lang        string `yaml:"lang"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Background  string `yaml:"background"`
	Wasm        string `yaml:"wasm"`
	WasmExec    string `yaml:"wasmExec"`
}

// DefaultData returns the page data used when no data file is given.
func DefaultData() Data {
	return Data{
		Lang:       "en",
		Title:      "Pixel Run",
		Background: "#222",
		Wasm:       "game.wasm",
		WasmExec:   "wasm_exec.js",
	}
}

// ParseData reads page data from YAML over the defaults.
func ParseData(raw []byte) (Data, error) {
	data := DefaultData()
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to parse page data: %w", err)
	}
	return data, nil
}

// Render executes tmpl with data into w.
func Render(w io.Writer, tmpl string, data Data) error {
	t, err := template.New("page").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Build renders the template at src (the built-in one when empty) with the
// YAML data at dataPath (defaults when empty) to out, creating its directory.
func Build(src, dataPath, out string) error {
	tmpl := defaultTemplate
	if src != "" {
		raw, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		tmpl = string(raw)
	}

	data := DefaultData()
	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return fmt.Errorf("failed to read page data: %w", err)
		}
		if data, err = ParseData(raw); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := Render(f, tmpl, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
