// Package chat implements the chat session store: an ordered,
// most-recent-first list of conversations persisted to the key/value store
// on every mutation.
package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"storm/storage"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderSystem Sender = "system"
)

const (
	// DefaultTitle is the title of a session before its first user message.
	DefaultTitle = "New Chat"

	// UntitledTitle replaces an empty title on rename.
	UntitledTitle = "Untitled Chat"

	// WelcomeMessage seeds new sessions when Options.SeedWelcome is set.
	WelcomeMessage = "Hello! I'm your AI assistant. How can I help you today?"

	titleLimit = 30
)

// Message is one chat entry.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one conversation thread. Titles are derived from the first
// user message and frozen afterwards.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// Options tune store behavior per front end.
type Options struct {
	// MaxSessions caps the history length; 0 means unbounded. The oldest
	// sessions are dropped beyond the cap, both at load time and on create.
	MaxSessions int

	// SeedWelcome adds an assistant greeting to every new session.
	SeedWelcome bool
}

// Store owns the session list and the active-session pointer. Sessions are
// ordered most-recent-first: a new session is prepended and becomes active.
type Store struct {
	store    storage.Store
	sessions []*Session
	activeID string
	opts     Options

	// onChange fires after every mutation so the history pane re-renders.
	onChange func()
}

// NewStore loads persisted history, enforcing the session cap, and ensures
// an active session exists. Corrupt history is discarded and logged.
func NewStore(store storage.Store, opts Options) *Store {
	s := &Store{store: store, opts: opts}

	if raw, ok := store.Get(storage.KeyChatHistory); ok {
		if err := json.Unmarshal([]byte(raw), &s.sessions); err != nil {
			log.Printf("chat: discarding corrupt chat history: %v", err)
			s.sessions = nil
		}
	}

	if opts.MaxSessions > 0 && len(s.sessions) > opts.MaxSessions {
		s.sessions = s.sessions[:opts.MaxSessions]
		s.persist()
	}

	if len(s.sessions) > 0 {
		s.activeID = s.sessions[0].ID
	} else {
		s.NewChat()
	}

	return s
}

// LoadSessions reads persisted history without touching the store: no
// session creation, no cap enforcement, no writes. For inspection commands.
func LoadSessions(store storage.Store) []*Session {
	raw, ok := store.Get(storage.KeyChatHistory)
	if !ok {
		return nil
	}
	var sessions []*Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil
	}
	return sessions
}

// OnChange registers the history re-render hook.
func (s *Store) OnChange(fn func()) { s.onChange = fn }

// Sessions returns the session list, most recent first.
func (s *Store) Sessions() []*Session { return s.sessions }

// ActiveID returns the active session id.
func (s *Store) ActiveID() string { return s.activeID }

// ActiveSession returns the active session, or nil.
func (s *Store) ActiveSession() *Session { return s.find(s.activeID) }

// NewChat prepends a fresh session and makes it active.
func (s *Store) NewChat() *Session {
	session := &Session{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Messages:  []Message{},
		CreatedAt: time.Now(),
	}
	if s.opts.SeedWelcome {
		session.Messages = append(session.Messages, Message{
			ID:        uuid.NewString(),
			Content:   WelcomeMessage,
			Sender:    SenderAI,
			Timestamp: time.Now(),
		})
	}

	s.sessions = append([]*Session{session}, s.sessions...)
	if s.opts.MaxSessions > 0 && len(s.sessions) > s.opts.MaxSessions {
		s.sessions = s.sessions[:s.opts.MaxSessions]
	}
	s.activeID = session.ID

	s.persist()
	s.notify()
	return session
}

// LoadChat makes the session active. The caller re-renders the message
// pane from the session's stored messages; nothing is re-appended.
// Returns false for an unknown id.
func (s *Store) LoadChat(id string) bool {
	if s.find(id) == nil {
		return false
	}
	s.activeID = id
	s.notify()
	return true
}

// DeleteChat removes a session. Destructive confirmation is the front
// end's responsibility. When the active session is removed, the most
// recent remaining one is loaded, or a fresh session is created.
func (s *Store) DeleteChat(id string) bool {
	index := -1
	for i, session := range s.sessions {
		if session.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	s.sessions = append(s.sessions[:index], s.sessions[index+1:]...)
	s.persist()

	if s.activeID == id {
		if len(s.sessions) > 0 {
			s.LoadChat(s.sessions[0].ID)
		} else {
			s.NewChat()
		}
		return true
	}

	s.notify()
	return true
}

// RenameChat sets a session's title; an empty title becomes UntitledTitle.
func (s *Store) RenameChat(id, title string) bool {
	session := s.find(id)
	if session == nil {
		return false
	}
	if title == "" {
		title = UntitledTitle
	}
	session.Title = title
	s.persist()
	s.notify()
	return true
}

// AddMessage appends a timestamped message to the active session. The
// first user message derives and freezes the session title. Returns nil
// when no session is active.
func (s *Store) AddMessage(content string, sender Sender) *Message {
	session := s.ActiveSession()
	if session == nil {
		return nil
	}

	message := Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now(),
	}
	session.Messages = append(session.Messages, message)

	if sender == SenderUser && session.Title == DefaultTitle && userMessageCount(session) == 1 {
		session.Title = DeriveTitle(content)
	}

	s.persist()
	s.notify()
	return &session.Messages[len(session.Messages)-1]
}

// DeriveTitle truncates a first user message into a session title: the
// first 30 characters, with an ellipsis when truncated.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}

func userMessageCount(session *Session) int {
	count := 0
	for _, m := range session.Messages {
		if m.Sender == SenderUser {
			count++
		}
	}
	return count
}

func (s *Store) find(id string) *Session {
	if id == "" {
		return nil
	}
	for _, session := range s.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

func (s *Store) persist() {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		log.Printf("chat: failed to marshal chat history: %v", err)
		return
	}
	if err := s.store.Set(storage.KeyChatHistory, string(data)); err != nil {
		log.Printf("chat: failed to persist chat history: %v", err)
	}
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
