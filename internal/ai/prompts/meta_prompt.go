package prompts

import "fmt"

// Template for a prompt with no pre-rendered visual text.
const metaPromptTemplate = `
You are an expert prompt engineer for AI video generation models. Your task is to process a raw user prompt written in Persian and enhance it, populating the fields of the provided JSON schema.

The user's raw prompt is:
---
%s
---

Follow these steps to populate the JSON fields:

1.  **original_prompt_fa**: Copy the user's original Persian prompt here.
2.  **analysis**:
    *   **identified_dialogue**: Identify any spoken dialogue (text in quotes) from the user's prompt. If none, leave empty.
    *   **identified_visual_text**: Identify any text meant to be written on objects (like signs or screens). If none, leave empty.
3.  **processed_persian**:
    *   **dialogue_with_diacritics**: This is a CRITICAL step. Add all necessary Persian diacritics (harakat), specifically including fatḥa (ـَ), kasra (ـِ), damma (ـُ), sukun (ـْ), and tashdid (ـّ), to the identified dialogue. The result must be fully vocalized for perfect, unambiguous Text-to-Speech (TTS) pronunciation. Do not miss any diacritics. If there is no dialogue, leave this field empty.
    *   **visual_text_clean**: Correct any spelling/grammar in the identified visual text. Do NOT add diacritics. If no visual text, leave empty.
4.  **enhanced_prompt_en**: Synthesize the entire request into a single, highly-detailed technical prompt in English, optimized for video generation AIs. Clearly incorporate instructions for both the dialogue and the visual text.
5.  **negative_prompt_en**: Create a standard but effective negative prompt in English to avoid common AI generation issues (e.g., bad anatomy, extra limbs, blurry).
`

// Template used when the visual text was already converted to SVG path data.
// Arguments: user prompt, SVG document.
const hybridMetaPromptTemplate = `
You are an expert prompt engineer for AI video generation models. Your task is to process a raw user prompt written in Persian and enhance it, populating the fields of the provided JSON schema.

The user's raw prompt is:
---
%s
---

Follow these steps to populate the JSON fields:

1.  **original_prompt_fa**: Copy the user's original Persian prompt here.
2.  **analysis**:
    *   **identified_dialogue**: Identify any spoken dialogue (text in quotes) from the user's prompt. If none, leave empty.
    *   **identified_visual_text**: Identify the text meant to be written on an object (e.g., sign). It has been pre-identified from the prompt. Copy it here.
3.  **processed_persian**:
    *   **dialogue_with_diacritics**: CRITICAL: Add all necessary Persian diacritics (harakat) to the identified dialogue for perfect TTS pronunciation. If no dialogue, leave empty.
    *   **visual_text_clean**: Take the identified visual text, correct spelling/grammar, but do NOT add diacritics.
4.  **enhanced_prompt_en**: This is the MOST IMPORTANT step. Synthesize the entire request into a single, highly-detailed technical prompt in English. It MUST include the following critical instruction block to render the visual text using precise vector data instead of generating it from a string.

    The instruction block to include is:
    ---
    [CRITICAL OVERLAY INSTRUCTION]: You MUST render a texture onto the target surface (e.g., a sign, screen). This texture is NOT an image file; it is described by the following SVG code. This code represents the precise geometric vector shapes for a line of text. Render these shapes exactly as defined by the path data.

    [SVG DATA]:
    %s

    [VISUAL STYLE FOR SVG]: The rendered text should look like black ink printed on the surface. It must be sharp and in focus. The texture should seamlessly integrate, matching the surface's perspective and lighting.
    ---

    Combine this block with the overall scene description and any dialogue instructions to create a complete and effective final prompt.

5.  **negative_prompt_en**: Create a standard negative prompt in English to avoid common AI issues.
`

// GetEnhancePrompt builds the meta prompt sent to the model. A non-empty
// svgCode selects the overlay variant.
func GetEnhancePrompt(userPrompt, svgCode string) string {
	if svgCode != "" {
		return fmt.Sprintf(hybridMetaPromptTemplate, userPrompt, svgCode)
	}
	return fmt.Sprintf(metaPromptTemplate, userPrompt)
}
