package config

import "github.com/zhubert/codechat/internal/conversation"

// GetConversations returns a copy of the cached conversation list.
func (c *Config) GetConversations() []conversation.Conversation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]conversation.Conversation, len(c.Conversations))
	copy(out, c.Conversations)
	return out
}

// GetConversation returns a copy of the cached conversation, or nil.
func (c *Config) GetConversation(id conversation.ID) *conversation.Conversation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, conv := range c.Conversations {
		if conv.ID == id {
			found := conv
			return &found
		}
	}
	return nil
}

// PutConversation moves conv to the front of the list, replacing any entry
// with the same ID.
func (c *Config) PutConversation(conv conversation.Conversation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]conversation.Conversation, 0, len(c.Conversations)+1)
	list = append(list, conv)
	for _, existing := range c.Conversations {
		if existing.ID != conv.ID {
			list = append(list, existing)
		}
	}
	c.Conversations = list
}

// RenameConversation updates a cached name in place.
func (c *Config) RenameConversation(id conversation.ID, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.Conversations {
		if c.Conversations[i].ID == id {
			c.Conversations[i].Name = name
			return true
		}
	}
	return false
}

// RemoveConversation removes a conversation by ID
func (c *Config) RemoveConversation(id conversation.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, conv := range c.Conversations {
		if conv.ID == id {
			c.Conversations = append(c.Conversations[:i], c.Conversations[i+1:]...)
			return true
		}
	}
	return false
}
