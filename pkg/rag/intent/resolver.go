package intent

import (
	"strings"

	"os-help-bot/pkg/store"
)

// Intent is the fast-path classification of a raw user message.
type Intent struct {
	Action   string `json:"action"`
	HelpType string `json:"help_type,omitempty"` // set for ActionSwitchCategory
}

// Action constants
const (
	ActionRestart        = "RESTART"
	ActionAttribution    = "ATTRIBUTION"
	ActionRoster         = "ROSTER"
	ActionSwitchCategory = "SWITCH_CATEGORY"
	ActionAnswer         = "ANSWER"
)

const restartCommand = "/start"

// Phrase lists, matched as substrings of the lowercased message
var (
	attributionPhrases = []string{"who created you", "who is your creator"}
	rosterPhrases      = []string{"who are all in that team", "who are in team"}
)

// Resolver maps messages to intents with keyword rules. It holds no state.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Preflight detects intents answered regardless of onboarding state.
// It returns false when the message should continue down the pipeline.
func (r *Resolver) Preflight(message string) (Intent, bool) {
	trimmed := strings.TrimSpace(message)
	if strings.EqualFold(trimmed, restartCommand) {
		return Intent{Action: ActionRestart}, true
	}

	lowered := strings.ToLower(message)
	switch {
	case containsAny(lowered, attributionPhrases):
		return Intent{Action: ActionAttribution}, true
	case containsAny(lowered, rosterPhrases):
		return Intent{Action: ActionRoster}, true
	}
	return Intent{}, false
}

// ResolveReady classifies a message from a READY session. Each keyword is a
// switch only when it would change currentHelpType; "technical" is tried first.
func (r *Resolver) ResolveReady(message, currentHelpType string) Intent {
	lowered := strings.ToLower(message)

	switch {
	case strings.Contains(lowered, store.HelpTypeTechnical) && currentHelpType != store.HelpTypeTechnical:
		return Intent{Action: ActionSwitchCategory, HelpType: store.HelpTypeTechnical}
	case strings.Contains(lowered, store.HelpTypeTheoretical) && currentHelpType != store.HelpTypeTheoretical:
		return Intent{Action: ActionSwitchCategory, HelpType: store.HelpTypeTheoretical}
	}
	return Intent{Action: ActionAnswer}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
