package ai

import "strings"

const readInstruction = "Convert the following text into a clean, natural format suitable for text-to-speech. " +
	"Remove any formatting markup, fix sentence structure, and ensure proper punctuation for natural speech flow. " +
	"Preserve the original meaning but make it sound conversational and easy to listen to. " +
	"Do not add any additional commentary or explanations - just return the cleaned text ready for speech synthesis:\n\n"

const explainInstruction = "Provide a comprehensive, detailed, and factual explanation of the following concept or topic. " +
	"Include its definition, key principles, historical context (if relevant), main theories, significant discoveries, and real-world applications. " +
	"Structure your response using **Markdown format** with clear headings (e.g., `## Heading`), bold text (e.g., `**text**`), and bullet points (e.g., `* item`). " +
	"Aim for a detailed academic overview suitable for a research note. " +
	"Do not include any introductory or concluding sentences outside the main explanation. " +
	"If the topic is too broad or cannot be explained concisely, focus on its most fundamental aspects.\n\n"

// BuildPrompt turns a request into provider-ready prompt text. Pure function,
// no I/O. Required fields are validated here, scoped to the operation; web
// context (when present) only affects the answer operation.
func BuildPrompt(req Request, web *WebSearch) (string, error) {
	var prompt strings.Builder

	switch strings.ToLower(req.Operation) {
	case OpSummarise:
		prompt.WriteString("Summarize in ")
		prompt.WriteString(summaryInstruction(req.SummaryLength))
		prompt.WriteString(":\n\n")
		prompt.WriteString(req.Content)

	case OpRead:
		prompt.WriteString(readInstruction)
		prompt.WriteString(req.Content)

	case OpTranslate:
		if req.TargetLanguage == "" {
			return "", &ValidationError{Message: "target language required for translation"}
		}
		prompt.WriteString("Translate to ")
		prompt.WriteString(req.TargetLanguage)
		prompt.WriteString(":\n\n")
		prompt.WriteString(req.Content)

	case OpAnswer:
		if req.Question == "" {
			return "", &ValidationError{Message: "question required for answer operation"}
		}
		if web != nil && strings.TrimSpace(web.CombinedSnippets) != "" {
			prompt.WriteString("Recent search results:\n")
			prompt.WriteString(web.CombinedSnippets)
			prompt.WriteString("\n")
		}
		prompt.WriteString("Answer directly and factually. Correct any false premises. Be concise.\n")
		prompt.WriteString("Question: ")
		prompt.WriteString(req.Question)
		if req.Content != "" {
			prompt.WriteString("\nContext: ")
			prompt.WriteString(req.Content)
		}

	case OpSimilar:
		if req.Question == "" {
			return "", &ValidationError{Message: "question/topic required for similar operation"}
		}
		prompt.WriteString(explainInstruction)
		prompt.WriteString("Concept/Topic: ")
		prompt.WriteString(req.Question)

	default:
		return "", &UnsupportedOperationError{Operation: req.Operation}
	}

	return prompt.String(), nil
}

// summaryInstruction picks the length instruction for summarise. Anything
// other than "short" or "long" (including absent) falls back to the default.
func summaryInstruction(length string) string {
	switch {
	case strings.EqualFold(length, "short"):
		return "1-2 sentences"
	case strings.EqualFold(length, "long"):
		return "1-2 paragraphs with details"
	default:
		return "3-5 sentences covering key points"
	}
}
