package internal

import (
	"path/filepath"
	"testing"

	"github.com/iksnae/routine-assistant/testutil"
)

func TestConversationAppendAndRestart(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) StateStore
	}{
		{"memory", func(t *testing.T) StateStore { return NewMemoryStore() }},
		{"sqlite", func(t *testing.T) StateStore {
			s, err := NewSQLiteStore(testutil.CreateInMemoryDB(t))
			if err != nil {
				t.Fatal(err)
			}
			return s
		}},
		{"bolt", func(t *testing.T) StateStore {
			s, err := OpenBoltStore(filepath.Join(testutil.CreateTempDir(t), "state.bolt"))
			if err != nil {
				t.Fatal(err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tt.store(t)
			conv := NewConversation(store)

			const n = 5
			for i := 0; i < n; i++ {
				conv.Append(ConversationMessage{Role: RoleUser, Content: "hello"})
			}
			if got := len(conv.Replay()); got != n {
				t.Fatalf("Replay() length = %d, want %d", got, n)
			}

			reloaded := NewConversation(store)
			reloaded.Load()
			if reloaded.Len() != n {
				t.Errorf("reloaded Len() = %d, want %d", reloaded.Len(), n)
			}

			conv.Restart()
			if conv.Len() != 0 {
				t.Errorf("Len() after Restart() = %d", conv.Len())
			}
			if _, ok, _ := store.Get(ChatHistoryKey); ok {
				t.Error("persisted key should be absent after Restart()")
			}
		})
	}
}

func TestConversationAppendKeepsOrder(t *testing.T) {
	conv := NewConversation(NewMemoryStore())
	conv.Append(
		ConversationMessage{Role: RoleUser, Content: "first"},
		ConversationMessage{Role: RoleAssistant, Content: "second"},
	)
	conv.Append(ConversationMessage{Role: RoleUser, Content: "third"})
	conv.Append()

	got := conv.Replay()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Replay() = %+v", got)
	}
	for i, content := range want {
		if got[i].Content != content {
			t.Errorf("Replay()[%d] = %q, want %q", i, got[i].Content, content)
		}
	}

	got[0].Content = "mutated"
	if conv.Replay()[0].Content != "first" {
		t.Error("Replay() must return a copy")
	}
}

func TestConversationLoad(t *testing.T) {
	tests := []struct {
		name    string
		stored  *string
		wantLen int
	}{
		{"nothing stored", nil, 0},
		{"stored history", strPtr(`[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]`), 2},
		{"corrupt history", strPtr(`[{"role":`), 0},
		{"empty value", strPtr(``), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.stored != nil {
				_ = store.Set(ChatHistoryKey, *tt.stored)
			}
			conv := NewConversation(store)
			conv.Append(ConversationMessage{Role: RoleUser, Content: "stale"})
			if tt.stored != nil {
				_ = store.Set(ChatHistoryKey, *tt.stored)
			} else {
				_ = store.Delete(ChatHistoryKey)
			}

			conv.Load()
			if conv.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", conv.Len(), tt.wantLen)
			}
		})
	}
}

func TestConversationFromSeededDatabase(t *testing.T) {
	store, err := NewSQLiteStore(testutil.CreateTestStateDB(t))
	if err != nil {
		t.Fatal(err)
	}
	conv := NewConversation(store)
	conv.Load()

	msgs := conv.Replay()
	if len(msgs) != 2 || msgs[1].Role != RoleAssistant {
		t.Errorf("Replay() = %+v", msgs)
	}
}

func TestConversationFailingStore(t *testing.T) {
	conv := NewConversation(failingStore{})
	conv.Append(ConversationMessage{Role: RoleUser, Content: "hi"})
	if conv.Len() != 1 {
		t.Errorf("Len() = %d, want in-memory append despite storage failure", conv.Len())
	}
	conv.Restart()
	if conv.Len() != 0 {
		t.Errorf("Len() after Restart() = %d", conv.Len())
	}
	conv.Load()
	if conv.Len() != 0 {
		t.Errorf("Len() after failed Load() = %d", conv.Len())
	}
}

func strPtr(s string) *string {
	return &s
}
