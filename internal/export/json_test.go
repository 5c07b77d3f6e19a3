package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/routine-assistant/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	tests := []struct {
		name       string
		transcript *internal.Transcript
		wantErr    bool
	}{
		{
			name:       "basic transcript",
			transcript: internal.CreateTestTranscript("test1"),
			wantErr:    false,
		},
		{
			name:       "empty transcript",
			transcript: internal.CreateTestTranscriptWithMessages("test2", []internal.ConversationMessage{}),
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONExporter{}

			err := exporter.Export(tt.transcript, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("JSONExporter.Export() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			output := buf.String()
			var decoded internal.Transcript
			if err := json.Unmarshal([]byte(output), &decoded); err != nil {
				t.Fatalf("Output is not valid JSON: %v\nOutput: %s", err, output)
			}

			if decoded.ID != tt.transcript.ID {
				t.Errorf("ID = %q, want %q", decoded.ID, tt.transcript.ID)
			}
			if len(decoded.Messages) != len(tt.transcript.Messages) {
				t.Errorf("got %d messages, want %d", len(decoded.Messages), len(tt.transcript.Messages))
			}
			if len(decoded.Selected) != len(tt.transcript.Selected) {
				t.Errorf("got %d selected, want %d", len(decoded.Selected), len(tt.transcript.Selected))
			}
			if !strings.Contains(output, "\n  ") {
				t.Errorf("Output should be pretty-printed with indentation")
			}
		})
	}
}

func TestJSONExporter_Extension(t *testing.T) {
	exporter := &JSONExporter{}
	if got := exporter.Extension(); got != "json" {
		t.Errorf("JSONExporter.Extension() = %v, want json", got)
	}
}
