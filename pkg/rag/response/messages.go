package response

import (
	"fmt"
	"strings"
)

// Onboarding prompts
const (
	WelcomePrompt         = "Welcome to OS Help Bot! Before we start, could you please tell me what operating system you are using?"
	AskHelpTypePrompt     = "Thanks! Are you looking for help with technical troubleshooting or theoretical concepts?"
	AskAnswerStylePrompt  = "Got it! Do you prefer short, concise answers, or more detailed explanations?"
	OnboardingDonePrompt  = "Great! Now feel free to ask your questions."
	SwitchedToTechnical   = "You've switched to technical help. How can I assist you with technical issues?"
	SwitchedToTheoretical = "You've switched to theoretical help. How can I assist you with theoretical concepts?"
)

// Fixed answers to small-talk intents
const (
	AttributionReply = "MUKKA SRIVATSAV and team has created me."
	RosterReply      = "MUKKA SRIVATSAV\n K.VENKATESH\n M.VAISHNAVI\n A.SAISREE\n"
)

// Aggregation texts
const (
	NoInformationFallback = "I'm sorry, I couldn't find any relevant information."
	InsightsHeader        = "Here are some insights:"
)

// KnowledgeBaseReply prefixes a remedy with the user's recorded OS.
func KnowledgeBaseReply(osLabel, remedy string) string {
	return fmt.Sprintf("Since you're using %s, here is some advice:\n%s", osLabel, remedy)
}

// MultiSourceReply renders the aggregated answer; the resources section is
// dropped when there are no links.
func MultiSourceReply(osLabel, answer, links string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on your OS (%s), here's what I found:\n%s", osLabel, answer))
	if strings.TrimSpace(links) != "" {
		sb.WriteString("\n\nFor more information, you can check these resources:\n")
		sb.WriteString(links)
	}
	return sb.String()
}
