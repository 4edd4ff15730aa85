package types

// Analysis is the model's reading of the raw prompt.
type Analysis struct {
	IdentifiedDialogue   string `json:"identified_dialogue"`
	IdentifiedVisualText string `json:"identified_visual_text"`
}

// ProcessedPersian holds the Persian fragments after clean-up.
type ProcessedPersian struct {
	DialogueWithDiacritics string `json:"dialogue_with_diacritics"`
	VisualTextClean        string `json:"visual_text_clean"`
}

// EnhancedPrompt represents the structure expected from the LLM.
// GeneratedSVG is never produced by the model; it is attached locally when an
// SVG overlay was sent along with the prompt.
type EnhancedPrompt struct {
	OriginalPromptFA string           `json:"original_prompt_fa"`
	Analysis         Analysis         `json:"analysis"`
	ProcessedPersian ProcessedPersian `json:"processed_persian"`
	EnhancedPromptEN string           `json:"enhanced_prompt_en"`
	NegativePromptEN string           `json:"negative_prompt_en"`
	GeneratedSVG     string           `json:"generated_svg,omitempty"`
}

// WithoutSVG returns a copy of the prompt with the local SVG stripped.
func (p EnhancedPrompt) WithoutSVG() EnhancedPrompt {
	p.GeneratedSVG = ""
	return p
}
