package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/routine-assistant/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format. Assistant replies are kept as
// written; user text has emphasis markers escaped.
func (e *MarkdownExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Routine session %s\n\n", transcript.ID)

	if transcript.Metadata.CatalogSource != "" {
		_, _ = fmt.Fprintf(w, "**Catalogue:** %s  \n", transcript.Metadata.CatalogSource)
	}
	if transcript.Metadata.ExportedAt != "" {
		_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", transcript.Metadata.ExportedAt)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(transcript.Messages))

	if len(transcript.Selected) > 0 {
		_, _ = fmt.Fprintf(w, "## Selected products\n\n")
		for _, p := range transcript.Selected {
			line := p.Name
			if p.Brand != "" {
				line = fmt.Sprintf("%s (%s)", p.Name, p.Brand)
			}
			if p.Category != "" {
				line += " · " + p.Category
			}
			_, _ = fmt.Fprintf(w, "- %s\n", escapeMarkdown(line))
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range transcript.Messages {
		content := msg.Content
		if msg.Role != internal.RoleAssistant {
			content = escapeMarkdown(content)
		}

		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", msg.Role, content)

		if i < len(transcript.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown emphasis outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
