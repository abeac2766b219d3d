package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentQuit
	IntentHelp
	IntentSwitchScreen // payload: screen name
	IntentToggleTheme
	IntentRepeatLast // replay the last thing spoken

	// Converter.
	IntentConvert     // payload: "<amount> <from> to <to>"
	IntentListUnits   // payload: optional family
	IntentCommonTable // the "Common Conversions" card

	// Timers.
	IntentAddTimer     // payload: "<name> <minutes>"
	IntentToggleTimer  // payload: timer ref
	IntentResetTimer   // payload: timer ref
	IntentDeleteTimer  // payload: timer ref
	IntentAddTime      // payload: "<ref> <minutes>"
	IntentDismissTimer // payload: optional timer ref
	IntentListTimers

	// Notes.
	IntentAddNote      // payload: note text
	IntentAddRecipe    // payload: "title | ing; ing | step; step"
	IntentListNotes    // payload: optional "favorites"
	IntentSearchNotes  // payload: query
	IntentFavoriteNote // payload: note ref
	IntentDeleteNote   // payload: note ref
	IntentScaleNote    // payload: "<ref> to <unit>"

	// Chat.
	IntentAskChef    // payload: message
	IntentQuickReply // payload: 1-based index
	IntentSetMood    // payload: mood
	IntentSetVoice   // payload: accent
	IntentSpeakLast
	IntentVoiceInput
	IntentPin   // payload: 1-based message index
	IntentUnpin
	IntentHistory
)

var intentLabels = map[IntentType]string{
	IntentUnknown:      "unknown",
	IntentQuit:         "quit",
	IntentHelp:         "help",
	IntentSwitchScreen: "switch_screen",
	IntentToggleTheme:  "toggle_theme",
	IntentRepeatLast:   "repeat_last",
	IntentConvert:      "convert",
	IntentListUnits:    "list_units",
	IntentCommonTable:  "common_conversions",
	IntentAddTimer:     "add_timer",
	IntentToggleTimer:  "toggle_timer",
	IntentResetTimer:   "reset_timer",
	IntentDeleteTimer:  "delete_timer",
	IntentAddTime:      "add_time",
	IntentDismissTimer: "dismiss_timer",
	IntentListTimers:   "list_timers",
	IntentAddNote:      "add_note",
	IntentAddRecipe:    "add_recipe",
	IntentListNotes:    "list_notes",
	IntentSearchNotes:  "search_notes",
	IntentFavoriteNote: "favorite_note",
	IntentDeleteNote:   "delete_note",
	IntentScaleNote:    "convert_note",
	IntentAskChef:      "ask_chef",
	IntentQuickReply:   "quick_reply",
	IntentSetMood:      "set_mood",
	IntentSetVoice:     "set_voice",
	IntentSpeakLast:    "speak_last",
	IntentVoiceInput:   "voice_input",
	IntentPin:          "pin",
	IntentUnpin:        "unpin",
	IntentHistory:      "history",
}

// String returns the snake_case intent name.
func (i IntentType) String() string {
	if s, ok := intentLabels[i]; ok {
		return s
	}
	return "unknown"
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. the timer reference
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	for t, s := range intentLabels {
		if s == name {
			return t
		}
	}
	return IntentUnknown
}
