// Package artifacts turns an enhanced prompt into the files a user takes to a
// video generation tool, and keeps them on disk for download.
package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"prompt_engineer_server/internal/types"

	"github.com/google/uuid"
)

const (
	TextFile = "enhanced_prompt.txt"
	JSONFile = "full_response.json"
	SVGFile  = "generated_text.svg"
)

var ErrNotFound = errors.New("artifact not found")

// File is one downloadable artifact.
type File struct {
	Name    string `json:"name"`
	Content string `json:"-"`
}

// Bundle is the set of artifacts produced for one enhancement.
type Bundle struct {
	ID    string `json:"id,omitempty"`
	Files []File `json:"files"`
}

// Get returns the named file of the bundle.
func (b Bundle) Get(name string) (File, bool) {
	for _, f := range b.Files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// Build renders the TXT, JSON and optional SVG artifacts.
func Build(resp *types.EnhancedPrompt) (Bundle, error) {
	if resp == nil {
		return Bundle{}, errors.New("no response to build artifacts from")
	}
	txt := fmt.Sprintf("%s\n--neg %s", resp.EnhancedPromptEN, resp.NegativePromptEN)

	var js bytes.Buffer
	enc := json.NewEncoder(&js)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp.WithoutSVG()); err != nil {
		return Bundle{}, fmt.Errorf("failed to encode response: %w", err)
	}

	b := Bundle{Files: []File{
		{Name: TextFile, Content: txt},
		{Name: JSONFile, Content: strings.TrimSuffix(js.String(), "\n")},
	}}
	if resp.GeneratedSVG != "" {
		b.Files = append([]File{{Name: SVGFile, Content: resp.GeneratedSVG}}, b.Files...)
	}
	return b, nil
}

func isArtifactName(name string) bool {
	return name == TextFile || name == JSONFile || name == SVGFile
}

// Store keeps bundles under dir/<id>/.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the bundle to a fresh directory and returns it with its id.
func (s *Store) Save(b Bundle) (Bundle, error) {
	id := uuid.New().String()
	fullDirPath := filepath.Join(s.dir, id)
	if err := os.MkdirAll(fullDirPath, 0755); err != nil {
		return Bundle{}, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	for _, f := range b.Files {
		if !isArtifactName(f.Name) {
			return Bundle{}, fmt.Errorf("unexpected artifact name %q", f.Name)
		}
		filePath := filepath.Join(fullDirPath, f.Name)
		if err := os.WriteFile(filePath, []byte(f.Content), 0644); err != nil {
			return Bundle{}, fmt.Errorf("failed to write artifact %s: %w", filePath, err)
		}
	}
	log.Printf("Stored %d artifacts for bundle %s", len(b.Files), id)

	b.ID = id
	return b, nil
}

// Open reads one artifact back.
func (s *Store) Open(id, name string) (File, error) {
	if _, err := uuid.Parse(id); err != nil || !isArtifactName(name) {
		return File{}, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, ErrNotFound
		}
		return File{}, fmt.Errorf("failed to read artifact: %w", err)
	}
	return File{Name: name, Content: string(data)}, nil
}

// WriteDir writes the bundle's files straight into dir, for the CLI.
func WriteDir(dir string, b Bundle) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	var paths []string
	for _, f := range b.Files {
		p := filepath.Join(dir, f.Name)
		if err := os.WriteFile(p, []byte(f.Content), 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
