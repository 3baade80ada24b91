// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import "fmt"

// promptTemplate is the fixed cartoon-generation prompt (spec §6.5). It is
// a plain fmt.Sprintf builder rather than text/template: the template
// never changes shape at runtime, so a template engine would only add
// parsing overhead to a hot path.
const promptTemplate = `Create a 4-panel comic strip in a single image based on this description: %s

Requirements:
- 2x2 grid layout
- sequential story
- cute, family-friendly cartoon style
- consistent characters/setting
- bright cheerful colors
%s`

// BuildPrompt composes the generation prompt from the analyzed image
// description and the caller's optional story theme (spec §4.8 step 3,
// §6.5). An empty userText falls back to the template's default trailer.
func BuildPrompt(description, userText string) string {
	trailer := "Create a heartwarming daily adventure story."
	if userText != "" {
		trailer = fmt.Sprintf("User's story theme: %s", userText)
	}
	return fmt.Sprintf(promptTemplate, description, trailer)
}
