package state

import (
	"errors"
	"strings"
	"time"

	"os-help-bot/internal/pkg/logger"
	"os-help-bot/pkg/rag/response"
	"os-help-bot/pkg/store"
)

// Invariant breaches. These are programming errors, not user input problems.
var (
	ErrSessionReady    = errors.New("session already completed onboarding")
	ErrSessionNotReady = errors.New("session has not completed onboarding")
)

// Manager drives the onboarding state machine
// AWAITING_OS → AWAITING_HELP_TYPE → AWAITING_ANSWER_STYLE → READY.
// Callers must hold the session lock.
type Manager struct {
	logger logger.ILogger
	now    func() time.Time
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger, now: time.Now}
}

// Advance fills the next unset onboarding field from message and returns the
// follow-up prompt. Input is never rejected.
func (m *Manager) Advance(session *store.Session, message string) (string, error) {
	lowered := strings.ToLower(message)

	var prompt string
	switch session.State() {
	case store.StateAwaitingOS:
		session.OSLabel = strings.TrimSpace(message)
		session.OSLabelSet = true
		prompt = response.AskHelpTypePrompt
	case store.StateAwaitingHelpType:
		session.HelpType = ClassifyHelpType(lowered)
		prompt = response.AskAnswerStylePrompt
	case store.StateAwaitingAnswerStyle:
		session.AnswerStyle = ClassifyAnswerStyle(lowered)
		prompt = response.OnboardingDonePrompt
	default:
		return "", ErrSessionReady
	}

	session.UpdatedAt = m.now()
	m.logger.Info("SESSION", "Onboarding advanced", map[string]interface{}{
		"user_id": session.UserID,
		"state":   session.State(),
	})
	return prompt, nil
}

// SwitchCategory overwrites the help type of a READY session.
func (m *Manager) SwitchCategory(session *store.Session, helpType string) error {
	if !session.IsReady() {
		return ErrSessionNotReady
	}
	previous := session.HelpType
	session.HelpType = helpType
	session.UpdatedAt = m.now()
	m.logger.Info("SESSION", "Help type switched", map[string]interface{}{
		"user_id": session.UserID,
		"from":    previous,
		"to":      helpType,
	})
	return nil
}

// Restart clears the session back to AWAITING_OS.
func (m *Manager) Restart(session *store.Session) {
	session.Clear(m.now())
	m.logger.Info("SESSION", "Onboarding restarted", map[string]interface{}{"user_id": session.UserID})
}

// ClassifyHelpType expects a lowercased message.
func ClassifyHelpType(lowered string) string {
	if strings.Contains(lowered, store.HelpTypeTechnical) {
		return store.HelpTypeTechnical
	}
	return store.HelpTypeTheoretical
}

// ClassifyAnswerStyle expects a lowercased message.
func ClassifyAnswerStyle(lowered string) string {
	if strings.Contains(lowered, "short") {
		return store.AnswerStyleBrief
	}
	return store.AnswerStyleDetailed
}
