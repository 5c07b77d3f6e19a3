package internal

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is an exportable copy of the session: the conversation and the selection
type Transcript struct {
	ID       string                `json:"id" yaml:"id"`
	Messages []ConversationMessage `json:"messages" yaml:"messages"`
	Selected []SelectedProduct     `json:"selected" yaml:"selected"`
	Metadata TranscriptMetadata    `json:"metadata" yaml:"metadata"`
}

// TranscriptMetadata contains additional transcript information
type TranscriptMetadata struct {
	CatalogSource string `json:"catalog_source,omitempty" yaml:"catalog_source,omitempty"`
	ExportedAt    string `json:"exported_at,omitempty" yaml:"exported_at,omitempty"`
	MessageCount  int    `json:"message_count" yaml:"message_count"`
	SelectedCount int    `json:"selected_count" yaml:"selected_count"`
}

// NewTranscript snapshots messages and selected under a fresh id
func NewTranscript(messages []ConversationMessage, selected []SelectedProduct, catalogSource string) *Transcript {
	return &Transcript{
		ID:       uuid.NewString(),
		Messages: messages,
		Selected: selected,
		Metadata: TranscriptMetadata{
			CatalogSource: catalogSource,
			ExportedAt:    time.Now().UTC().Format(time.RFC3339),
			MessageCount:  len(messages),
			SelectedCount: len(selected),
		},
	}
}

// Transcript snapshots the current session
func (a *Assistant) Transcript() *Transcript {
	a.mu.Lock()
	defer a.mu.Unlock()
	return NewTranscript(a.Conversation.Replay(), a.Selection.List(), a.Catalog.Source())
}
