package store

import (
	"sync"
	"time"
)

// Help types recorded during onboarding (or by a category switch)
const (
	HelpTypeTechnical   = "technical"
	HelpTypeTheoretical = "theoretical"
)

// Answer styles recorded during onboarding
const (
	AnswerStyleBrief    = "brief"
	AnswerStyleDetailed = "detailed"
)

// Onboarding states, derived from which fields are filled
const (
	StateAwaitingOS          = "AWAITING_OS"
	StateAwaitingHelpType    = "AWAITING_HELP_TYPE"
	StateAwaitingAnswerStyle = "AWAITING_ANSWER_STYLE"
	StateReady               = "READY"
)

// Session represents one user's onboarding profile in memory.
// Fields are filled strictly in the order OSLabel → HelpType → AnswerStyle.
// Hold Lock for the whole of a turn; only the turn's goroutine may mutate.
type Session struct {
	mu sync.Mutex

	UserID      string    `json:"user_id"`
	OSLabel     string    `json:"os_label"`
	OSLabelSet  bool      `json:"os_label_set"` // OSLabel may legitimately be ""
	HelpType    string    `json:"help_type"`
	AnswerStyle string    `json:"answer_style"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// State reports the onboarding state. Caller must hold the lock.
func (s *Session) State() string {
	switch {
	case !s.OSLabelSet:
		return StateAwaitingOS
	case s.HelpType == "":
		return StateAwaitingHelpType
	case s.AnswerStyle == "":
		return StateAwaitingAnswerStyle
	default:
		return StateReady
	}
}

func (s *Session) IsReady() bool {
	return s.State() == StateReady
}

// Clear drops every onboarding field, returning the session to AWAITING_OS.
func (s *Session) Clear(now time.Time) {
	s.OSLabel = ""
	s.OSLabelSet = false
	s.HelpType = ""
	s.AnswerStyle = ""
	s.UpdatedAt = now
}

// Snapshot is a lock-free copy for reporting.
type Snapshot struct {
	UserID      string    `json:"user_id"`
	State       string    `json:"state"`
	OSLabel     string    `json:"os_label"`
	HelpType    string    `json:"help_type"`
	AnswerStyle string    `json:"answer_style"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot takes the lock itself.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		UserID:      s.UserID,
		State:       s.State(),
		OSLabel:     s.OSLabel,
		HelpType:    s.HelpType,
		AnswerStyle: s.AnswerStyle,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
