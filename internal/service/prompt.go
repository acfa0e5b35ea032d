package service

import (
	"fmt"
	"strings"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// MaxToolContentChars caps how much of one tool result goes into a prompt.
const MaxToolContentChars = 2000

// TruncationMarker is appended to tool content cut at MaxToolContentChars.
const TruncationMarker = "... (truncated)"

const promptInstructions = `Instructions:
- Answer the user's question using only the information provided above.
- If the information is insufficient to answer, say so and suggest what else to look at.
- Keep the answer concise and use Markdown where it helps.`

// BuildPrompt lays out the question and the tool results in one prompt.
// The layout is relied upon by the fallback responder: the question sits in
// `User's question: "..."` and every result follows a `--- name ---` header.
func BuildPrompt(query string, results []models.ToolResult) string {
	var sb strings.Builder
	sb.WriteString("You are an assistant that answers questions about a GitHub repository.\n\n")
	sb.WriteString(fmt.Sprintf("User's question: \"%s\"\n\n", query))
	sb.WriteString("The following information was collected with repository tools:\n\n")

	for _, r := range results {
		sb.WriteString("--- " + r.Name + " ---\n")
		sb.WriteString(TruncateContent(r.Content))
		sb.WriteString("\n\n")
	}

	sb.WriteString(promptInstructions)
	return sb.String()
}

// TruncateContent keeps the first MaxToolContentChars characters of content
// and marks the cut.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxToolContentChars {
		return content
	}
	return string(runes[:MaxToolContentChars]) + TruncationMarker
}
