// Package chat implements the TravelViz helper bot: a fixed keyword table
// with a stock fallback answer.
package chat

import "strings"

type rule struct {
	keyword string
	answer  string
}

// Checked in order so replies stay deterministic when a message contains
// several keywords.
var rules = []rule{
	{"hello", "Hello! Welcome to TravelViz. How can I help you today?"},
	{"what is travelviz", "TravelViz is your travel insights dashboard — track destinations, explore data, and plan trips!"},
	{"features", "We have login/signup, dashboard, insights, trip planner, interactive map, profile management, and an admin panel."},
	{"bye", "Safe travels!"},
}

const fallbackReply = "I'm not sure about that, but I can tell you more about TravelViz!"

// Reply answers a user message, matching keywords case-insensitively.
func Reply(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if strings.Contains(lower, r.keyword) {
			return r.answer
		}
	}
	return fallbackReply
}
