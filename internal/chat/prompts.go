package chat

import (
	"strings"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

// AssistantName is how the assistant introduces itself.
const AssistantName = "Chef Gemini"

// Apology is the bot line shown when the model cannot be reached.
const Apology = "Sorry, I couldn't get a response right now. Please try again later."

const basePrompt = "You are a professional kitchen assistant with deep culinary knowledge."

var moodPrompts = map[domain.Mood]string{
	domain.MoodCheerful:     "You are a friendly and upbeat kitchen assistant, always enthusiastic about helping users with cooking. Respond with a cheerful and positive tone, making the user feel excited about cooking.",
	domain.MoodFriendly:     "You are a warm and welcoming kitchen assistant. Respond with a friendly and approachable tone, creating a sense of comfort for the user.",
	domain.MoodProfessional: "You are a professional and knowledgeable kitchen assistant. Your responses should be clear, formal, and focused on providing precise cooking advice.",
}

var welcomeLines = map[domain.Mood][]string{
	domain.MoodCheerful: {
		"Hi! I'm **Chef Gemini**, your AI kitchen buddy. What's cooking today? 🍳",
		"Hello, hungry soul! Chef Gemini at your service. Got a recipe in mind? 🍲",
		"Hey there! Ready to whip up something delicious together? 👩‍🍳",
	},
	domain.MoodFriendly: {
		"Hey there! Chef Gemini here to help you feel right at home in the kitchen. 😊",
		"Welcome! Let's cook something cozy and comforting today. 🍲",
		"Hi! I'm here to guide you through any recipe, no pressure. 👋",
	},
	domain.MoodProfessional: {
		"Greetings. I am Chef Gemini, your culinary assistant. How may I assist you today?",
		"Hello. Ready to explore precise, expert-level cooking together?",
		"Welcome. I'm here to provide you with accurate and professional cooking advice.",
	},
}

var quickReplies = []string{
	"What can I cook today?",
	"Give me a snack recipe",
	"I need dessert ideas",
}

// QuickReplies returns the canned prompts offered under the chat.
func QuickReplies() []string {
	out := make([]string, len(quickReplies))
	copy(out, quickReplies)
	return out
}

// WelcomeLines returns the greetings for a mood.
func WelcomeLines(m domain.Mood) []string {
	out := make([]string, len(welcomeLines[m]))
	copy(out, welcomeLines[m])
	return out
}

// BuildPrompt assembles the single-turn prompt sent to the model. extra is
// optional kitchen context (running timers and the like) placed before the
// user query.
func BuildPrompt(m domain.Mood, query, extra string) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)
	sb.WriteString(" ")
	sb.WriteString(moodPrompts[m])
	if extra = strings.TrimSpace(extra); extra != "" {
		sb.WriteString(" Kitchen context: ")
		sb.WriteString(extra)
	}
	sb.WriteString(" User query: ")
	sb.WriteString(query)
	return sb.String()
}
