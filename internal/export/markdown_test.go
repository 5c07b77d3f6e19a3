package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/routine-assistant/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name       string
		transcript *internal.Transcript
		want       []string
		notWant    []string
	}{
		{
			name:       "basic transcript",
			transcript: internal.CreateTestTranscript("test1"),
			want: []string{
				"# Routine session test1",
				"**Catalogue:** products.json",
				"**Messages:** 2",
				"## Selected products",
				"- Foaming Cleanser (CeraVe) · cleanser",
				"## Messages",
				"**user:**",
				"**assistant:**",
				"1. **Cleanser** (AM/PM)",
			},
		},
		{
			name: "user emphasis is escaped",
			transcript: internal.CreateTestTranscriptWithMessages("test2", []internal.ConversationMessage{
				{Role: internal.RoleUser, Content: "is **this** safe?"},
			}),
			want:    []string{`is \*\*this\*\* safe?`},
			notWant: []string{"## Selected products"},
		},
		{
			name:       "empty transcript",
			transcript: internal.CreateTestTranscriptWithMessages("test3", []internal.ConversationMessage{}),
			want: []string{
				"# Routine session test3",
				"**Messages:** 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}

			if err := exporter.Export(tt.transcript, &buf); err != nil {
				t.Fatalf("MarkdownExporter.Export() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q\nOutput:\n%s", want, output)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(output, notWant) {
					t.Errorf("Output should not contain %q", notWant)
				}
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**bold**", `\*\*bold\*\*`},
		{"underscore", "__x__", `\_\_x\_\_`},
		{"code block kept", "```\n**raw**\n```", "```\n**raw**\n```"},
		{"plain", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeMarkdown(tt.in); got != tt.want {
				t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}
