package translate

import (
	"fmt"
	"strings"

	"github.com/hollowdrift/claudegate/internal/models"
)

// FlattenPrompt renders the full message sequence as one text prompt of
// "{role}: {content}" lines, for backends that take a single prompt instead
// of a structured message list. When function schemas are present an explicit
// instruction to answer in matching JSON is appended; the backend may ignore
// it, so this is best-effort only.
func FlattenPrompt(msgs []models.ChatMessage, fns []models.FunctionSchema) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	if len(fns) > 0 {
		b.WriteString("\n")
		b.WriteString(FunctionInstruction(fns))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FunctionInstruction builds the natural-language encoding of the advertised
// function schemas.
func FunctionInstruction(fns []models.FunctionSchema) string {
	var b strings.Builder
	b.WriteString("You may answer by calling one of the following functions. ")
	b.WriteString("If you do, reply with only a JSON object of the form ")
	b.WriteString(`{"name": "<function name>", "arguments": {...}} matching one of these schemas:`)
	for _, fn := range fns {
		b.WriteString("\n- ")
		b.WriteString(fn.Name)
		if fn.Description != "" {
			b.WriteString(": ")
			b.WriteString(fn.Description)
		}
		if len(fn.Parameters) > 0 {
			fmt.Fprintf(&b, " (parameters: %s)", string(fn.Parameters))
		}
	}
	return b.String()
}

// EditPrompt builds the single-turn prompt used by the edits endpoint.
func EditPrompt(input, instruction string) string {
	return fmt.Sprintf("Edit the following text based on the instruction:\n\nText: %s\n\nInstruction: %s", input, instruction)
}

// EmbeddingPrompt asks the chat backend to emit a numeric vector as text.
// This is the clearly-labeled embeddings approximation; the reply format is
// not guaranteed and the caller must treat parse failures as unsupported.
func EmbeddingPrompt(input string) string {
	return fmt.Sprintf("Return only a comma-separated list of 64 floating point numbers between -1 and 1 representing the semantic content of the following text. No prose, no brackets.\n\nText: %s", input)
}
