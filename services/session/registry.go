package session

import (
	"strings"
	"sync"

	"roomie/models"
)

// Session owns one booking context and the ordered transcript for a single
// conversation token. A session is locked for the duration of a turn, so
// concurrent turns on the same token serialize while distinct tokens never
// contend.
type Session struct {
	mu      sync.Mutex
	Context models.BookingContext
	History []models.ChatMessage
}

// Lock acquires the session's exclusive section for one turn.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's exclusive section.
func (s *Session) Unlock() { s.mu.Unlock() }

// Append adds a message to the transcript. Caller must hold the session lock.
func (s *Session) Append(text, sender string) {
	s.History = append(s.History, models.ChatMessage{Text: text, Sender: sender})
}

// SupersedeLastBotMessage replaces the trailing bot message with text,
// avoiding duplicate trailing bot turns. When the transcript is empty or
// ends with a user message, the text is appended instead. Caller must hold
// the session lock.
func (s *Session) SupersedeLastBotMessage(text string) {
	if n := len(s.History); n > 0 && s.History[n-1].Sender == models.SenderBot {
		s.History[n-1].Text = text
		return
	}
	s.Append(text, models.SenderBot)
}

// Clear resets the session to an empty draft context with no history.
// Caller must hold the session lock.
func (s *Session) Clear() {
	s.Context = models.BookingContext{Status: models.StatusDraft}
	s.History = nil
}

// Transcript renders the ordered conversation as "sender: text" lines, the
// form fed back into the extractor on every turn.
func (s *Session) Transcript() string {
	var sb strings.Builder
	for i, msg := range s.History {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(msg.Sender)
		sb.WriteString(": ")
		sb.WriteString(msg.Text)
	}
	return sb.String()
}

// Registry maps session tokens to their sessions. Sessions are created
// lazily and never evicted within the process lifetime.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	greeting string
}

// NewRegistry returns an empty registry. New sessions open with greeting as
// their first bot message.
func NewRegistry(greeting string) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		greeting: greeting,
	}
}

// GetOrCreate returns the session for token, atomically creating it with an
// empty draft context and the canonical greeting when it does not exist yet.
// The second return value reports whether a new session was created.
func (r *Registry) GetOrCreate(token string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if ok {
		return s, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock so two callers never race-create.
	if s, ok := r.sessions[token]; ok {
		return s, false
	}
	s = &Session{Context: models.BookingContext{Status: models.StatusDraft}}
	s.History = append(s.History, models.ChatMessage{Text: r.greeting, Sender: models.SenderBot})
	r.sessions[token] = s
	return s, true
}

// Reset empties the session's context and history, preserving the session's
// existence. Unknown tokens are a no-op.
func (r *Registry) Reset(token string) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	s.Clear()
}

// History returns a copy of the transcript for token, or an empty list for
// an unknown token.
func (r *Registry) History(token string) []models.ChatMessage {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return []models.ChatMessage{}
	}
	s.Lock()
	defer s.Unlock()
	out := make([]models.ChatMessage, len(s.History))
	copy(out, s.History)
	return out
}
