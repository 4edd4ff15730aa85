// Package enhancer runs one prompt through visual-text detection, SVG
// conversion and the model call, keeping a step log for the caller.
package enhancer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"prompt_engineer_server/internal/ai"
	"prompt_engineer_server/internal/textparts"
	"prompt_engineer_server/internal/types"
	"prompt_engineer_server/internal/vectortext"
)

var ErrFontUnavailable = errors.New("font is not loaded; SVG generation is unavailable")

// Step log lines.
const (
	StepPreparing  = "Preparing request..."
	StepVisualText = "Visual text detected, converting to SVG..."
	StepSVGDone    = "SVG conversion completed."
	StepNoFont     = "Visual text detected but the font is not loaded. Falling back to the standard prompt."
	StepSending    = "Sending request to the Gemini API..."
	StepReceived   = "Response received, processing..."
	StepDone       = "Processing completed successfully!"
	StepFailed     = "Operation failed."
)

// PromptEnhancer is the remote model call.
type PromptEnhancer interface {
	EnhancePrompt(ctx context.Context, apiKey, userPrompt, svgCode string) (*types.EnhancedPrompt, error)
}

// Result is the outcome of one run. Steps is filled even when the run fails.
type Result struct {
	Response   *types.EnhancedPrompt `json:"response,omitempty"`
	VisualText string                `json:"visualText,omitempty"`
	Steps      []string              `json:"steps"`
}

func (r *Result) step(msg string) {
	log.Printf("enhance: %s", msg)
	r.Steps = append(r.Steps, msg)
}

type Service struct {
	enhancer PromptEnhancer
	font     *vectortext.Font
}

// NewService wires the model client with an optional font. A nil font turns
// SVG conversion off.
func NewService(enhancer PromptEnhancer, font *vectortext.Font) *Service {
	return &Service{enhancer: enhancer, font: font}
}

// FontLoaded reports whether SVG generation is available.
func (s *Service) FontLoaded() bool {
	return s.font != nil
}

// Enhance runs the full pipeline for prompt.
func (s *Service) Enhance(ctx context.Context, prompt, apiKey string) (*Result, error) {
	res := &Result{}
	if strings.TrimSpace(prompt) == "" {
		return res, ai.ErrPromptRequired
	}
	res.step(StepPreparing)

	var svgCode string
	parts := textparts.IdentifyTextParts(prompt)
	switch {
	case parts.Found && s.font != nil:
		res.VisualText = parts.VisualText
		res.step(StepVisualText)
		svg, err := vectortext.GenerateSVG(parts.VisualText, s.font)
		if err != nil {
			res.step(StepFailed)
			return res, fmt.Errorf("failed to convert visual text to SVG: %w", err)
		}
		svgCode = svg
		res.step(StepSVGDone)
	case parts.Found:
		res.VisualText = parts.VisualText
		res.step(StepNoFont)
	}

	res.step(StepSending)
	resp, err := s.enhancer.EnhancePrompt(ctx, apiKey, prompt, svgCode)
	if err != nil {
		res.step(StepFailed)
		return res, err
	}

	res.step(StepReceived)
	res.Response = resp
	res.step(StepDone)
	return res, nil
}

// GenerateSVG converts text on its own, without calling the model.
func (s *Service) GenerateSVG(text string) (string, error) {
	if s.font == nil {
		return "", ErrFontUnavailable
	}
	return vectortext.GenerateSVG(text, s.font)
}

// EnhanceRaw forwards an already prepared prompt and SVG to the model.
func (s *Service) EnhanceRaw(ctx context.Context, apiKey, userPrompt, svgCode string) (*types.EnhancedPrompt, error) {
	return s.enhancer.EnhancePrompt(ctx, apiKey, userPrompt, svgCode)
}
