package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"prompt_engineer_server/internal/ai/prompts"
	"prompt_engineer_server/internal/types"

	openai "github.com/sashabaranov/go-openai"
)

// EnhancePrompt sends the raw prompt, and the SVG overlay when there is one,
// to the model and returns its structured answer. apiKey overrides the
// configured key when set.
func (g *Generator) EnhancePrompt(ctx context.Context, apiKey, userPrompt, svgCode string) (*types.EnhancedPrompt, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return nil, ErrPromptRequired
	}
	client, err := g.clientFor(apiKey)
	if err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompts.GetEnhancePrompt(userPrompt, svgCode)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "enhanced_prompt",
				Schema: &responseSchema,
			},
		},
	}

	log.Printf("Sending enhancement request to %s (svg overlay: %t)", g.model, svgCode != "")
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion for prompt enhancement failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Printf("Model usage for empty enhancement response: %+v", resp.Usage)
		return nil, ErrEmptyResponse
	}

	result, err := parseEnhancedPrompt(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if svgCode != "" {
		result.GeneratedSVG = svgCode
	}

	log.Printf("Enhancement complete (%d prompt tokens, %d completion tokens)", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return result, nil
}

// parseEnhancedPrompt decodes the model output, tolerating a markdown fence.
func parseEnhancedPrompt(llmOutput string) (*types.EnhancedPrompt, error) {
	cleanedOutput := strings.TrimSpace(llmOutput)
	cleanedOutput = strings.TrimPrefix(cleanedOutput, "```json")
	cleanedOutput = strings.TrimPrefix(cleanedOutput, "```")
	cleanedOutput = strings.TrimSuffix(cleanedOutput, "```")
	cleanedOutput = strings.TrimSpace(cleanedOutput)

	var result types.EnhancedPrompt
	if err := json.Unmarshal([]byte(cleanedOutput), &result); err != nil {
		log.Printf("Failed to parse model JSON output. Cleaned output: %s", cleanedOutput)
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	// the model never fills this in; drop anything it invents
	result.GeneratedSVG = ""
	return &result, nil
}
