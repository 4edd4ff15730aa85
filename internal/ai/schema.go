package ai

import (
	"github.com/sashabaranov/go-openai/jsonschema"
)

// responseSchema is the JSON shape the model must answer with.
var responseSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"original_prompt_fa": {
			Type:        jsonschema.String,
			Description: "The user's original, unmodified Persian prompt.",
		},
		"analysis": {
			Type:        jsonschema.Object,
			Description: "Analysis of the original prompt.",
			Properties: map[string]jsonschema.Definition{
				"identified_dialogue": {
					Type:        jsonschema.String,
					Description: "The spoken dialogue part of the prompt, if any.",
				},
				"identified_visual_text": {
					Type:        jsonschema.String,
					Description: "The visual text part of the prompt (e.g., on a sign), if any.",
				},
			},
			Required: []string{"identified_dialogue", "identified_visual_text"},
		},
		"processed_persian": {
			Type:        jsonschema.Object,
			Description: "Persian text after processing.",
			Properties: map[string]jsonschema.Definition{
				"dialogue_with_diacritics": {
					Type:        jsonschema.String,
					Description: "The dialogue text after adding all necessary diacritics (harakat) for TTS.",
				},
				"visual_text_clean": {
					Type:        jsonschema.String,
					Description: "The visual text with correct spelling and grammar, without any diacritics.",
				},
			},
			Required: []string{"dialogue_with_diacritics", "visual_text_clean"},
		},
		"enhanced_prompt_en": {
			Type:        jsonschema.String,
			Description: "The final, detailed technical prompt in English, optimized for a video AI.",
		},
		"negative_prompt_en": {
			Type:        jsonschema.String,
			Description: "A standard negative prompt in English to avoid common AI generation issues.",
		},
	},
	Required: []string{"original_prompt_fa", "analysis", "processed_persian", "enhanced_prompt_en", "negative_prompt_en"},
}
