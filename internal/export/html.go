package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iksnae/routine-assistant/internal"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// HTMLExporter renders the transcript as a standalone HTML page. Assistant
// markdown is converted and sanitized; user text is escaped.
type HTMLExporter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewHTMLExporter creates an exporter with the UGC sanitizing policy
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
	}
}

// Export exports a transcript to HTML
func (e *HTMLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>Routine session %s</title>\n", internal.EscapeHTML(transcript.ID))
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>Routine session %s</h1>\n", internal.EscapeHTML(transcript.ID))

	if len(transcript.Selected) > 0 {
		buf.WriteString("<h2>Selected products</h2>\n<ul class=\"selected-products\">\n")
		for _, p := range transcript.Selected {
			fmt.Fprintf(&buf, "<li><strong>%s</strong> (%s) %s</li>\n",
				internal.EscapeHTML(p.Name),
				internal.EscapeHTML(p.Brand),
				internal.EscapeHTML(p.Category))
		}
		buf.WriteString("</ul>\n")
	}

	buf.WriteString("<div class=\"chat-window\">\n")
	for _, msg := range transcript.Messages {
		if msg.Role == internal.RoleAssistant {
			rendered, err := e.renderMarkdown(msg.Content)
			if err != nil {
				return fmt.Errorf("failed to render assistant message: %w", err)
			}
			fmt.Fprintf(&buf, "<div class=\"ai-response\">%s</div>\n", rendered)
			continue
		}
		buf.WriteString(internal.RenderUserHTML(msg.Content))
		buf.WriteString("\n")
	}
	buf.WriteString("</div>\n</body>\n</html>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func (e *HTMLExporter) renderMarkdown(text string) (string, error) {
	var out bytes.Buffer
	if err := e.md.Convert([]byte(text), &out); err != nil {
		return "", err
	}
	return e.policy.Sanitize(out.String()), nil
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
