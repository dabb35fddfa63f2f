package chat

import (
	"math/rand/v2"
	"strings"
)

// Greeting seeds an empty conversation.
const Greeting = "Hi! 👋 I'm your challenge assistant. How can I help you today?"

// QuickReplies are the canned prompts offered under the input.
var QuickReplies = []string{
	"Any tips?",
	"I'm feeling nervous",
	"How to stay motivated?",
	"What's today's challenge?",
	"I need help",
}

type rule struct {
	keywords []string
	reply    string
}

// rules are checked in order; the first keyword hit wins.
var rules = []rule{
	{
		keywords: []string{"challenge", "what"},
		reply:    "Today's challenge is designed just for you! Check the Challenge tab to see what awaits. 🎯",
	},
	{
		keywords: []string{"nervous", "scared"},
		reply:    "It's totally normal to feel nervous! Remember, every expert was once a beginner. Start small and you've got this! 💪",
	},
	{
		keywords: []string{"motivation", "help"},
		reply:    "You're already taking the first step by being here! That's amazing. What specific area would you like motivation for? 🌟",
	},
	{
		keywords: []string{"streak"},
		reply:    "Streaks are powerful! 🔥 Every day you complete a challenge, you're building a better version of yourself. Keep going!",
	},
	{
		keywords: []string{"thank"},
		reply:    "You're so welcome! I'm here whenever you need encouragement or guidance. You're doing great! ✨",
	},
}

// DefaultReplies answer anything no rule matches.
var DefaultReplies = []string{
	"That's a great point! How are you feeling about today's challenge? 🤔",
	"I understand! Remember, progress over perfection. What's one small step you can take? 🚀",
	"You're doing amazing by just showing up! What would be most helpful right now? 💚",
	"Interesting! Tell me more about how you're feeling about your goals. 🎯",
	"I'm here to support you! Is there anything specific about challenges you'd like to know? 🤝",
}

// Respond picks the assistant reply for input.
func Respond(input string, rng *rand.Rand) string {
	lower := strings.ToLower(input)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return DefaultReplies[rng.IntN(len(DefaultReplies))]
}
