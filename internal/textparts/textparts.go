// Package textparts finds the fragment of a prompt that is meant to be drawn
// inside the scene (a sign, a headline, a written note).
package textparts

import (
	"regexp"
	"strings"
)

// The keywords are Persian for "sign", "written" and "headline". An optional
// "با نوشته" ("with the text") may follow. The phrase itself sits between a
// pair of delimiters drawn from : « " '. Gaps may hold any Unicode space,
// line or paragraph separator, or a byte order mark.
var visualRegex = regexp.MustCompile(`(?i)(?:تابلو|نوشته|تیتر)` + gap + `(?:با نوشته)?` + gap + `[:«"'](.+?)[:»"']`)

const gap = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]*`

// Parts is the result of scanning a prompt.
type Parts struct {
	VisualText string
	Found      bool
}

// IdentifyTextParts returns the first visual-text phrase in the prompt,
// exactly as typed apart from surrounding whitespace.
func IdentifyTextParts(prompt string) Parts {
	m := visualRegex.FindStringSubmatch(prompt)
	if m == nil {
		return Parts{}
	}
	text := strings.TrimSpace(m[1])
	if text == "" {
		return Parts{}
	}
	return Parts{VisualText: text, Found: true}
}
