package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/routine-assistant/internal"
)

// JSONLExporter exports the conversation in JSONL format (one message per line)
type JSONLExporter struct{}

// Export writes one {"role","content"} object per line
func (e *JSONLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range transcript.Messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
