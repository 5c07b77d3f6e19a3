package internal

import (
	"encoding/json"
	"sync"
)

// Conversation is the persisted, append-only chat log
type Conversation struct {
	store StateStore

	mu       sync.Mutex
	messages []ConversationMessage
}

// NewConversation creates an empty conversation persisted through store
func NewConversation(store StateStore) *Conversation {
	return &Conversation{store: store}
}

// Load replaces the in-memory log with the persisted one. Unreadable data leaves an empty log.
func (c *Conversation) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = nil
	if c.store == nil {
		return
	}

	raw, ok, err := c.store.Get(ChatHistoryKey)
	if err != nil {
		LogWarn("%v", &PersistenceError{Key: ChatHistoryKey, Op: "read", Err: err})
		return
	}
	if !ok || raw == "" {
		return
	}

	var messages []ConversationMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		LogWarn("%v", &PersistenceError{Key: ChatHistoryKey, Op: "decode", Err: err})
		return
	}
	c.messages = messages
}

// Append adds messages to the end of the log and persists it
func (c *Conversation) Append(messages ...ConversationMessage) {
	if len(messages) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, messages...)
	c.saveLocked()
}

// Restart clears the log and removes the persisted copy
func (c *Conversation) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = nil
	if c.store == nil {
		return
	}
	if err := c.store.Delete(ChatHistoryKey); err != nil {
		LogWarn("%v", &PersistenceError{Key: ChatHistoryKey, Op: "delete", Err: err})
	}
}

// Replay returns a copy of the full log
func (c *Conversation) Replay() []ConversationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ConversationMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *Conversation) saveLocked() {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(c.messages)
	if err != nil {
		LogWarn("%v", &PersistenceError{Key: ChatHistoryKey, Op: "encode", Err: err})
		return
	}
	if err := c.store.Set(ChatHistoryKey, string(data)); err != nil {
		LogWarn("%v", &PersistenceError{Key: ChatHistoryKey, Op: "write", Err: err})
	}
}
