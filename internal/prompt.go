package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

const catalogAllowlistPrefix = "Only use and discuss products from the following catalogue. " +
	"Do not mention, recommend, compare, or provide instructions for any product not in this list. " +
	"If asked about a product outside this list, politely refuse and offer an alternative from the list. " +
	"The catalogue (JSON): "

const catalogFallbackMessage = "You may only discuss products listed in this catalogue. " +
	"If a product is not in the catalogue, refuse and offer an alternative that is."

// ScopePolicyMessage keeps the assistant on catalogue products regardless of brand
var ScopePolicyMessage = ConversationMessage{
	Role: RoleSystem,
	Content: "You are an expert assistant that answers only about products listed in the product catalogue. " +
		"If a product is in the catalogue, give factual information and include it in routines whatever its brand. " +
		"If the user asks about products that are not in the catalogue, politely refuse and offer catalogue alternatives. " +
		"Keep answers factual and concise and never invent products outside the provided list.",
}

// RoutineTaskMessage describes the expected shape of a generated routine
var RoutineTaskMessage = ConversationMessage{
	Role: RoleSystem,
	Content: "You are a helpful beauty assistant. Given a list of selected products " +
		"(each with id, brand, name, category and description), produce a clear step-by-step routine " +
		"that uses only the selected products. For each step include the product name from the provided data, " +
		"when to use it (AM/PM), the order, short application instructions and a one-sentence rationale. " +
		"If a step needs a product category that none of the selected products covers, say that the user " +
		"has not selected a product for that step. Do not invent products.",
}

// allowlistEntry is the per-product shape sent in the allowlist
type allowlistEntry struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// PromptBuilder assembles the message sequences sent to the relay
type PromptBuilder struct {
	catalog *Catalog

	mu         sync.Mutex
	allowlist  *ConversationMessage
	generation int
}

// NewPromptBuilder creates a builder over catalog
func NewPromptBuilder(catalog *Catalog) *PromptBuilder {
	return &PromptBuilder{catalog: catalog}
}

// AllowlistMessage returns the catalogue allowlist system message. It is rebuilt
// only when the catalogue generation changes; the fallback is never cached.
func (b *PromptBuilder) AllowlistMessage(ctx context.Context) ConversationMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	products, err := b.catalog.Load(ctx)
	if err != nil {
		LogWarn("Using fallback catalogue instruction: %v", err)
		return ConversationMessage{Role: RoleSystem, Content: catalogFallbackMessage}
	}

	gen := b.catalog.Generation()
	if b.allowlist != nil && b.generation == gen {
		return *b.allowlist
	}

	entries := make([]allowlistEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, allowlistEntry{
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    p.Category,
			Description: p.Description,
		})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		LogWarn("Failed to encode catalogue allowlist: %v", err)
		return ConversationMessage{Role: RoleSystem, Content: catalogFallbackMessage}
	}

	msg := ConversationMessage{Role: RoleSystem, Content: catalogAllowlistPrefix + string(data)}
	b.allowlist = &msg
	b.generation = gen
	LogDebug("Built catalogue allowlist for %d product(s), generation %d", len(entries), gen)
	return msg
}

// BuildChatMessages returns allowlist, scope policy, history and the pending user turn
func (b *PromptBuilder) BuildChatMessages(ctx context.Context, history []ConversationMessage, pending ConversationMessage) []ConversationMessage {
	messages := make([]ConversationMessage, 0, len(history)+3)
	messages = append(messages, b.AllowlistMessage(ctx), ScopePolicyMessage)
	messages = append(messages, history...)
	return append(messages, pending)
}

// BuildRoutineMessages returns allowlist, scope policy, routine task, history with
// the pending summary, then the product payload
func (b *PromptBuilder) BuildRoutineMessages(ctx context.Context, history []ConversationMessage, summary ConversationMessage, payload ConversationMessage) []ConversationMessage {
	messages := make([]ConversationMessage, 0, len(history)+5)
	messages = append(messages, b.AllowlistMessage(ctx), ScopePolicyMessage, RoutineTaskMessage)
	messages = append(messages, history...)
	return append(messages, summary, payload)
}

// ResolveSelected looks up the full catalogue record of each selected product by
// id, then by case-insensitive name, falling back to the stored snapshot
func ResolveSelected(products []Product, selected []SelectedProduct) []Product {
	resolved := make([]Product, 0, len(selected))
	for _, s := range selected {
		if p, ok := FindByID(products, s.ID); ok {
			resolved = append(resolved, p)
			continue
		}
		if p, ok := FindByName(products, s.Name); ok {
			resolved = append(resolved, p)
			continue
		}
		resolved = append(resolved, s.AsProduct())
	}
	return resolved
}

// RoutineSummary is the human-readable record kept in the conversation instead of the payload
func RoutineSummary(count int) ConversationMessage {
	return ConversationMessage{
		Role:    RoleUser,
		Content: fmt.Sprintf("Requested routine using %d selected product(s).", count),
	}
}

// RoutinePayload builds the request-only user message carrying the selected products
func RoutinePayload(products []Product) (ConversationMessage, error) {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return ConversationMessage{}, fmt.Errorf("failed to encode selected products: %w", err)
	}
	return ConversationMessage{
		Role: RoleUser,
		Content: "Generate a routine using ONLY the selected products below. " +
			"Use the provided product fields when referencing products. Selected products (JSON):\n" +
			string(data) +
			"\nRespond in plain text, do not recommend products not in this list.",
	}, nil
}
