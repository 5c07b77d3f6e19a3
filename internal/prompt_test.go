package internal

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/routine-assistant/testutil"
)

func TestAllowlistMessage(t *testing.T) {
	catalog := NewStaticCatalog(CreateTestProducts())
	builder := NewPromptBuilder(catalog)

	msg := builder.AllowlistMessage(context.Background())
	if msg.Role != RoleSystem {
		t.Errorf("Role = %q, want system", msg.Role)
	}
	if !strings.HasPrefix(msg.Content, catalogAllowlistPrefix) {
		t.Fatalf("Content should start with the allowlist instruction, got %q", msg.Content)
	}

	var entries []map[string]string
	testutil.JSONUnmarshal(t, []byte(strings.TrimPrefix(msg.Content, catalogAllowlistPrefix)), &entries)
	if len(entries) != 8 {
		t.Fatalf("allowlist has %d entries, want 8", len(entries))
	}
	for _, key := range []string{"name", "brand", "category", "description"} {
		if _, ok := entries[0][key]; !ok {
			t.Errorf("entry is missing %q", key)
		}
	}
	if _, ok := entries[0]["id"]; ok {
		t.Error("entry should not carry the id")
	}
}

func TestAllowlistMessageIsRebuiltOnReload(t *testing.T) {
	src := &countingSource{data: []byte(`{"products":[{"id":1,"name":"Old Cream"}]}`)}
	catalog := NewCatalog(src, nil)
	builder := NewPromptBuilder(catalog)

	first := builder.AllowlistMessage(context.Background())
	again := builder.AllowlistMessage(context.Background())
	if first.Content != again.Content || !strings.Contains(first.Content, "Old Cream") {
		t.Fatalf("memoized message changed: %q vs %q", first.Content, again.Content)
	}

	src.data = []byte(`{"products":[{"id":1,"name":"New Cream"}]}`)
	if again := builder.AllowlistMessage(context.Background()); strings.Contains(again.Content, "New Cream") {
		t.Fatal("allowlist should not change without a reload")
	}

	if _, err := catalog.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	rebuilt := builder.AllowlistMessage(context.Background())
	if !strings.Contains(rebuilt.Content, "New Cream") {
		t.Errorf("allowlist not rebuilt after reload: %q", rebuilt.Content)
	}
}

func TestAllowlistMessageFallback(t *testing.T) {
	src := &countingSource{err: errors.New("offline")}
	builder := NewPromptBuilder(NewCatalog(src, nil))

	msg := builder.AllowlistMessage(context.Background())
	if msg.Content != catalogFallbackMessage {
		t.Errorf("Content = %q, want the fallback", msg.Content)
	}

	src.err = nil
	src.data = []byte(testutil.CatalogJSON)
	msg = builder.AllowlistMessage(context.Background())
	if !strings.HasPrefix(msg.Content, catalogAllowlistPrefix) {
		t.Error("fallback must not be memoized")
	}
}

func TestBuildChatMessages(t *testing.T) {
	builder := NewPromptBuilder(NewStaticCatalog(CreateTestProducts()))
	history := []ConversationMessage{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}
	pending := ConversationMessage{Role: RoleUser, Content: "which cleanser?"}

	msgs := builder.BuildChatMessages(context.Background(), history, pending)
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5", len(msgs))
	}
	if !strings.HasPrefix(msgs[0].Content, catalogAllowlistPrefix) {
		t.Error("first message should be the allowlist")
	}
	if msgs[1] != ScopePolicyMessage {
		t.Error("second message should be the scope policy")
	}
	if msgs[2].Content != "hi" || msgs[3].Content != "hello" {
		t.Error("history should follow the system messages")
	}
	if msgs[4] != pending {
		t.Error("pending turn should be last")
	}
}

func TestBuildRoutineMessages(t *testing.T) {
	products := CreateTestProducts()
	builder := NewPromptBuilder(NewStaticCatalog(products))
	history := []ConversationMessage{{Role: RoleUser, Content: "hi"}}

	payload, err := RoutinePayload(products[:2])
	if err != nil {
		t.Fatal(err)
	}
	summary := RoutineSummary(2)

	msgs := builder.BuildRoutineMessages(context.Background(), history, summary, payload)
	if len(msgs) != 6 {
		t.Fatalf("got %d messages, want 6", len(msgs))
	}
	wantRoles := []string{RoleSystem, RoleSystem, RoleSystem, RoleUser, RoleUser, RoleUser}
	for i, role := range wantRoles {
		if msgs[i].Role != role {
			t.Errorf("msgs[%d].Role = %q, want %q", i, msgs[i].Role, role)
		}
	}
	if msgs[2] != RoutineTaskMessage {
		t.Error("third message should be the routine task")
	}
	if msgs[4].Content != "Requested routine using 2 selected product(s)." {
		t.Errorf("summary = %q", msgs[4].Content)
	}
	if !strings.Contains(msgs[5].Content, `"name": "Foaming Cleanser"`) {
		t.Errorf("payload should carry pretty-printed products, got %q", msgs[5].Content)
	}
}

func TestResolveSelected(t *testing.T) {
	products := CreateTestProducts()
	selected := []SelectedProduct{
		{ID: "1", Name: "stale name"},
		{ID: "gone", Name: "daily lotion"},
		{ID: "x", Name: "Unknown Balm", Category: "moisturizer"},
	}

	got := ResolveSelected(products, selected)
	if len(got) != 3 {
		t.Fatalf("got %d products, want 3", len(got))
	}
	if got[0].Name != "Foaming Cleanser" {
		t.Errorf("by id: got %q", got[0].Name)
	}
	if got[1].ID != "2" || got[1].Description == "" {
		t.Errorf("by name: got %+v", got[1])
	}
	if got[2].ID != "x" || got[2].Name != "Unknown Balm" {
		t.Errorf("snapshot fallback: got %+v", got[2])
	}
}

func TestRoutinePayloadIsValidJSON(t *testing.T) {
	payload, err := RoutinePayload(CreateTestProducts()[:1])
	if err != nil {
		t.Fatal(err)
	}
	start := strings.Index(payload.Content, "[")
	end := strings.LastIndex(payload.Content, "]")
	var products []Product
	if err := json.Unmarshal([]byte(payload.Content[start:end+1]), &products); err != nil {
		t.Fatalf("payload JSON invalid: %v", err)
	}
	if products[0].ID != "1" {
		t.Errorf("payload product = %+v", products[0])
	}
}
