package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelJSON = `{
  "original_prompt_fa": "یک تابلو «قهوه»",
  "analysis": {"identified_dialogue": "", "identified_visual_text": "قهوه"},
  "processed_persian": {"dialogue_with_diacritics": "", "visual_text_clean": "قهوه"},
  "enhanced_prompt_en": "A cozy cafe sign that reads coffee",
  "negative_prompt_en": "blurry, distorted text"
}`

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type       string `json:"type"`
		JSONSchema struct {
			Name   string          `json:"name"`
			Schema json.RawMessage `json:"schema"`
		} `json:"json_schema"`
	} `json:"response_format"`
}

// fakeUpstream is an OpenAI-compatible chat completion endpoint.
type fakeUpstream struct {
	content  string
	status   int
	lastReq  capturedRequest
	lastAuth string
	lastPath string
	calls    int
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls++
	f.lastAuth = r.Header.Get("Authorization")
	f.lastPath = r.URL.Path
	f.lastReq = capturedRequest{}
	_ = json.NewDecoder(r.Body).Decode(&f.lastReq)

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid. Please pass a valid API key.","type":"invalid_request_error","code":"invalid_api_key"}}`))
		return
	}
	resp := openai.ChatCompletionResponse{
		ID:      "chatcmpl-1",
		Object:  "chat.completion",
		Created: 1,
		Model:   f.lastReq.Model,
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestGenerator(t *testing.T, up *fakeUpstream, key string) *Generator {
	t.Helper()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)
	return NewGenerator(key, srv.URL+"/v1beta/openai/", "gemini-2.5-flash")
}

func TestEnhancePrompt_Plain(t *testing.T) {
	up := &fakeUpstream{content: modelJSON}
	g := newTestGenerator(t, up, "server-key")

	got, err := g.EnhancePrompt(context.Background(), "", "یک تابلو «قهوه»", "")
	require.NoError(t, err)

	assert.Equal(t, "A cozy cafe sign that reads coffee", got.EnhancedPromptEN)
	assert.Equal(t, "قهوه", got.Analysis.IdentifiedVisualText)
	assert.Empty(t, got.GeneratedSVG)

	assert.Equal(t, "Bearer server-key", up.lastAuth)
	assert.Equal(t, "/v1beta/openai/chat/completions", up.lastPath)
	assert.Equal(t, "gemini-2.5-flash", up.lastReq.Model)
	require.Len(t, up.lastReq.Messages, 1)
	assert.Contains(t, up.lastReq.Messages[0].Content, "یک تابلو «قهوه»")
	assert.NotContains(t, up.lastReq.Messages[0].Content, "[SVG DATA]")
	require.NotNil(t, up.lastReq.ResponseFormat)
	assert.Equal(t, "json_schema", up.lastReq.ResponseFormat.Type)
	assert.Equal(t, "enhanced_prompt", up.lastReq.ResponseFormat.JSONSchema.Name)

	var schema struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(up.lastReq.ResponseFormat.JSONSchema.Schema, &schema))
	assert.ElementsMatch(t, []string{"original_prompt_fa", "analysis", "processed_persian", "enhanced_prompt_en", "negative_prompt_en"}, schema.Required)
}

func TestEnhancePrompt_WithSVG(t *testing.T) {
	up := &fakeUpstream{content: "```json\n" + modelJSON + "\n```"}
	g := newTestGenerator(t, up, "server-key")

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><path d="M0 0Z" fill="black"/></svg>`
	got, err := g.EnhancePrompt(context.Background(), "", "یک تابلو «قهوه»", svg)
	require.NoError(t, err)

	assert.Equal(t, svg, got.GeneratedSVG)
	prompt := up.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "[CRITICAL OVERLAY INSTRUCTION]")
	assert.Contains(t, prompt, "[SVG DATA]:\n    "+svg)
}

func TestEnhancePrompt_RequestKeyOverridesServerKey(t *testing.T) {
	up := &fakeUpstream{content: modelJSON}
	g := newTestGenerator(t, up, "server-key")

	_, err := g.EnhancePrompt(context.Background(), "user-key", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer user-key", up.lastAuth)
}

func TestEnhancePrompt_Validation(t *testing.T) {
	up := &fakeUpstream{content: modelJSON}
	g := newTestGenerator(t, up, "")

	_, err := g.EnhancePrompt(context.Background(), "", "prompt", "")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
	assert.False(t, g.HasDefaultKey())

	_, err = g.EnhancePrompt(context.Background(), "key", "   ", "")
	assert.ErrorIs(t, err, ErrPromptRequired)

	assert.Zero(t, up.calls, "nothing reaches the model")
}

func TestEnhancePrompt_EmptyReply(t *testing.T) {
	up := &fakeUpstream{content: "  "}
	g := newTestGenerator(t, up, "key")

	_, err := g.EnhancePrompt(context.Background(), "", "prompt", "")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestEnhancePrompt_BadJSON(t *testing.T) {
	up := &fakeUpstream{content: "Sure! Here is your prompt."}
	g := newTestGenerator(t, up, "key")

	_, err := g.EnhancePrompt(context.Background(), "", "prompt", "")
	assert.ErrorIs(t, err, ErrBadModelOutput)
}

func TestEnhancePrompt_UpstreamError(t *testing.T) {
	up := &fakeUpstream{status: http.StatusUnauthorized}
	g := newTestGenerator(t, up, "key")

	_, err := g.EnhancePrompt(context.Background(), "", "prompt", "")
	require.Error(t, err)

	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
	assert.Equal(t, 1, up.calls, "no retry")
}

func TestParseEnhancedPrompt_DropsInventedSVG(t *testing.T) {
	withSVG := strings.Replace(modelJSON, `"negative_prompt_en"`, `"generated_svg": "<svg/>", "negative_prompt_en"`, 1)
	got, err := parseEnhancedPrompt(withSVG)
	require.NoError(t, err)
	assert.Empty(t, got.GeneratedSVG)
}
