package ai

import (
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrAPIKeyRequired = errors.New("an API key is required")
	ErrPromptRequired = errors.New("userPrompt is required")
	ErrEmptyResponse  = errors.New("empty response received from the model")
	ErrBadModelOutput = errors.New("failed to parse model JSON output")
)

// Generator talks to Gemini through its OpenAI-compatible endpoint.
type Generator struct {
	client  *openai.Client // nil when no default key is configured
	baseURL string
	model   string
}

func NewGenerator(apiKey, baseURL, model string) *Generator {
	g := &Generator{
		baseURL: baseURL,
		model:   model,
	}
	if strings.TrimSpace(apiKey) != "" {
		g.client = g.newClient(apiKey)
	}
	return g
}

func (g *Generator) newClient(apiKey string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if g.baseURL != "" {
		config.BaseURL = g.baseURL
	}
	return openai.NewClientWithConfig(config)
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// HasDefaultKey reports whether a server-side key is configured.
func (g *Generator) HasDefaultKey() bool {
	return g.client != nil
}

// clientFor returns a client for the caller's key, or the default one.
func (g *Generator) clientFor(apiKey string) (*openai.Client, error) {
	if key := strings.TrimSpace(apiKey); key != "" {
		return g.newClient(key), nil
	}
	if g.client == nil {
		return nil, ErrAPIKeyRequired
	}
	return g.client, nil
}
