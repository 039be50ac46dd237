package scanning

import "strings"

// transcribePrompt is the shared prompt used by all LLM providers for reading receipts
const transcribePrompt = `You are reading a photographed or scanned purchase receipt. Transcribe all printed text exactly as it appears.

Rules:
- Keep one printed line per output line, in top-to-bottom order
- Keep every number, currency symbol and currency code exactly as printed
- Keep item rows on a single line (description, quantity, prices)
- Do not summarize, translate, correct or reorder anything
- Do not add commentary before or after the text
- Do not use markdown code blocks`

// transcribeSystemPrompt gives chat-style models their role
const transcribeSystemPrompt = "You are an OCR engine for receipts and invoices. You output only the text printed on the document."

// cleanTranscript strips markdown code fences that models add despite the prompt
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence along with any language tag
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimLeft(text, "`")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
