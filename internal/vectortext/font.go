package vectortext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
)

// maxFontBytes caps remote downloads; Vazirmatn is ~120 KiB.
const maxFontBytes = 32 << 20

var ErrNoFontSource = errors.New("no font path or URL configured")

// Font is a parsed TrueType/OpenType font. It is safe for concurrent use.
// Outlines come from sf; shaping goes through face, which is not, so mu
// serialises it.
type Font struct {
	sf   *sfnt.Font
	Name string

	mu     sync.Mutex
	face   *tsfont.Face
	shaper shaping.HarfbuzzShaper
}

// ParseFont parses raw TTF/OTF bytes.
func ParseFont(data []byte) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := tsfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load font for shaping: %w", err)
	}
	var buf sfnt.Buffer
	name, err := sf.Name(&buf, sfnt.NameIDFull)
	if err != nil {
		name = "unknown"
	}
	return &Font{sf: sf, Name: name, face: face}, nil
}

// LoadFont reads the font from path when set, otherwise fetches it from url.
func LoadFont(ctx context.Context, path, url string) (*Font, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		log.Printf("Loaded font file %s (%d bytes)", path, len(data))
		return ParseFont(data)
	}
	if url == "" {
		return nil, ErrNoFontSource
	}
	return fetchFont(ctx, url)
}

func fetchFont(ctx context.Context, url string) (*Font, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build font request: %w", err)
	}
	client := &http.Client{Timeout: 30 * time.Second}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch font: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch font: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read font body: %w", err)
	}
	log.Printf("Fetched font from %s (%d bytes) in %s", url, len(data), time.Since(start))
	return ParseFont(data)
}
