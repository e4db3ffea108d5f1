// Package session owns the chat sessions of the consultancy UI: their
// ordering, the active-session pointer and durable persistence into a
// single local slot. The Store is the only component allowed to mutate the
// collection; everything else sees deep-copied snapshots.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role tags a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting seeds every new session so the transcript is never empty.
const Greeting = "Hello! I am your AI Study Consultant. Ask me anything about studying abroad, visas, or universities."

// maxTitleRunes bounds the derived session title.
const maxTitleRunes = 40

// Message is one chat turn. Text only grows in place while an assistant
// reply is streaming; afterwards the message is immutable.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ChatSession is one persisted conversation thread.
type ChatSession struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Collection is the full persisted state: sessions newest-first plus the
// active pointer.
type Collection struct {
	Sessions []ChatSession `json:"sessions"`
	ActiveID string        `json:"activeId"`
}

func newChatSession() ChatSession {
	return ChatSession{
		ID:          uuid.NewString(),
		Messages:    []Message{{Role: RoleAssistant, Text: Greeting}},
		LastUpdated: time.Now(),
	}
}

// deriveTitle produces the frozen session title from the first user
// message: whitespace collapsed, truncated to a bounded length.
func deriveTitle(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > maxTitleRunes {
		return string(runes[:maxTitleRunes]) + "…"
	}
	return text
}

func (s ChatSession) clone() ChatSession {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

func (c Collection) clone() Collection {
	out := Collection{ActiveID: c.ActiveID, Sessions: make([]ChatSession, len(c.Sessions))}
	for i, s := range c.Sessions {
		out.Sessions[i] = s.clone()
	}
	return out
}
