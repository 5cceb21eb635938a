package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxChatMessageLength bounds a single user or assistant message.
	MaxChatMessageLength = 500
	// ContextWindowSize is the number of most recent session messages forwarded
	// to generation. Bounding the window keeps latency and token cost constant
	// regardless of session age.
	ContextWindowSize = 5
)

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one append-only entry in a session's history.
type ChatMessage struct {
	Role      ChatRole
	Text      string
	Timestamp time.Time
}

// ChatSession is a caller-scoped conversation history keyed by an opaque token.
type ChatSession struct {
	SessionID    string
	Messages     []ChatMessage
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// ValidateChatMessage enforces the structural constraints on an incoming user
// message before any throttling or session work happens.
func ValidateChatMessage(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ValidationError{Field: "message", Reason: "is required"}
	}
	// Length bounds count characters, not bytes.
	if utf8.RuneCountInString(trimmed) > MaxChatMessageLength {
		return &ValidationError{Field: "message", Reason: "must be at most 500 characters"}
	}
	return nil
}

// BuildContext derives the bounded prompt context for generation: the most
// recent ContextWindowSize messages (oldest of the window first), joined with
// single spaces, followed by the incoming user message.
func BuildContext(session ChatSession, userMessage string) string {
	messages := session.Messages
	if len(messages) > ContextWindowSize {
		messages = messages[len(messages)-ContextWindowSize:]
	}
	parts := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		parts = append(parts, msg.Text)
	}
	parts = append(parts, userMessage)
	return strings.Join(parts, " ")
}
