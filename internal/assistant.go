package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// RoutineResult is the outcome of a routine request
type RoutineResult struct {
	Reply       string
	Suggestions []Suggestion
}

// Assistant ties the catalogue, session state and relay together. Every action
// holds the session lock until it completes.
type Assistant struct {
	Catalog      *Catalog
	Selection    *Selection
	Conversation *Conversation
	Prompts      *PromptBuilder

	relay Relay
	model string

	mu sync.Mutex
}

// NewAssistant creates an assistant over catalog with state kept in store.
// model is sent with routine requests; empty means DefaultModel.
func NewAssistant(catalog *Catalog, store StateStore, relay Relay, model string) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	return &Assistant{
		Catalog:      catalog,
		Selection:    NewSelection(store),
		Conversation: NewConversation(store),
		Prompts:      NewPromptBuilder(catalog),
		relay:        relay,
		model:        model,
	}
}

// Restore rehydrates the selection and conversation from storage
func (a *Assistant) Restore(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.Conversation.Load()
	a.Selection.Restore(ctx, a.Catalog)
}

// RelayConfigured reports whether requests can be sent
func (a *Assistant) RelayConfigured() bool {
	if a.relay == nil {
		return false
	}
	if c, ok := a.relay.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

// Toggle selects or deselects the catalogue product with the given id or sku.
// It returns the product and whether it is selected afterwards.
func (a *Assistant) Toggle(ctx context.Context, id string) (Product, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	products, err := a.Catalog.Load(ctx)
	if err != nil {
		return Product{}, false, err
	}
	p, ok := FindByIDOrSKU(products, id)
	if !ok {
		return Product{}, false, fmt.Errorf("product %q not found in catalogue", id)
	}
	return p, a.Selection.Toggle(p.ID, p.Snapshot()), nil
}

// Chat sends one user turn with the conversation so far. The conversation is
// only extended when the relay answers.
func (a *Assistant) Chat(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	if !a.RelayConfigured() {
		return "", ErrRelayNotConfigured
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	userTurn := ConversationMessage{Role: RoleUser, Content: text}
	messages := a.Prompts.BuildChatMessages(ctx, a.Conversation.Replay(), userTurn)

	reply, err := a.complete(ctx, RelayRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	a.Conversation.Append(userTurn, ConversationMessage{Role: RoleAssistant, Content: reply})
	return reply, nil
}

// GenerateRoutine asks for a routine built from the selected products and
// suggests catalogue products for steps the selection does not cover. Only a
// short summary of the request is kept in the conversation.
func (a *Assistant) GenerateRoutine(ctx context.Context) (*RoutineResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	selected := a.Selection.List()
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	if !a.RelayConfigured() {
		return nil, ErrRelayNotConfigured
	}

	products, _ := a.Catalog.LoadOrEmpty(ctx)
	resolved := ResolveSelected(products, selected)

	payload, err := RoutinePayload(resolved)
	if err != nil {
		return nil, err
	}
	summary := RoutineSummary(len(resolved))
	messages := a.Prompts.BuildRoutineMessages(ctx, a.Conversation.Replay(), summary, payload)

	reply, err := a.complete(ctx, RelayRequest{Messages: messages, Model: a.model})
	if err != nil {
		return nil, err
	}

	a.Conversation.Append(summary, ConversationMessage{Role: RoleAssistant, Content: reply})

	suggestions := SuggestMissingProducts(products, selected, reply)
	LogDebug("Routine reply produced %d suggestion(s)", len(suggestions))
	return &RoutineResult{Reply: reply, Suggestions: suggestions}, nil
}

// Restart clears the conversation
func (a *Assistant) Restart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Conversation.Restart()
}

// ClearSelection removes every selected product
func (a *Assistant) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Selection.Clear()
}

func (a *Assistant) complete(ctx context.Context, req RelayRequest) (string, error) {
	reply, err := a.relay.Complete(ctx, req)
	if err != nil {
		LogDebug("Relay call failed: %v", err)
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
