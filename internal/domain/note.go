package domain

import "time"

// Note is a kitchen note. Recipe notes also carry ingredients and steps.
type Note struct {
	ID           string
	Text         string
	Favorite     bool
	CreatedAt    time.Time
	Style        NoteStyle
	IsRecipe     bool
	Ingredients  []string
	Instructions []string
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	c.Ingredients = append([]string(nil), n.Ingredients...)
	c.Instructions = append([]string(nil), n.Instructions...)
	return &c
}

// NoteStyle is the visual preset of a note card.
type NoteStyle struct {
	Name       string
	Background string // hex colour
	Foreground string // hex colour
	FontSize   int
}

// NoteDraft is the input for creating a note.
type NoteDraft struct {
	Text         string
	Style        string // preset name, "" for the default
	IsRecipe     bool
	Ingredients  []string
	Instructions []string
}
