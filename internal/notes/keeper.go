// Package notes implements the kitchen notes and recipe keeper.
package notes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/kitchenpal/internal/convert"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Style presets, matching the note card colours.
var presets = []domain.NoteStyle{
	{Name: "Default", Background: "#ffffff", Foreground: "#333333", FontSize: 16},
	{Name: "Recipe", Background: "#FFF5E6", Foreground: "#333333", FontSize: 16},
	{Name: "Shopping", Background: "#E6F7FF", Foreground: "#333333", FontSize: 16},
	{Name: "Important", Background: "#FFE6E6", Foreground: "#333333", FontSize: 16},
}

// Presets returns the available note styles.
func Presets() []domain.NoteStyle {
	out := make([]domain.NoteStyle, len(presets))
	copy(out, presets)
	return out
}

// Preset looks up a style by name, case-insensitively. "" is the default.
func Preset(name string) (domain.NoteStyle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return presets[0], nil
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return domain.NoteStyle{}, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
}

// FormatDate renders a note timestamp as "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Keeper is the notes service.
type Keeper struct {
	store domain.NoteStore
	log   *logger.Logger
	now   func() time.Time
}

// NewKeeper creates a keeper backed by store.
func NewKeeper(store domain.NoteStore, log *logger.Logger) *Keeper {
	return &Keeper{store: store, log: log, now: time.Now}
}

// Add creates a note from a draft. Blank ingredient and instruction lines are
// dropped, and only recipe notes keep them at all.
func (k *Keeper) Add(ctx context.Context, d domain.NoteDraft) (*domain.Note, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return nil, domain.ErrEmptyNote
	}
	style, err := Preset(d.Style)
	if err != nil {
		return nil, err
	}

	n := &domain.Note{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: k.now(),
		Style:     style,
		IsRecipe:  d.IsRecipe,
	}
	if d.IsRecipe {
		n.Ingredients = nonBlank(d.Ingredients)
		n.Instructions = nonBlank(d.Instructions)
	}

	if err := k.store.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("saving note: %w", err)
	}
	k.log.Info("note added: %s (recipe=%t, style=%s)", n.ID, n.IsRecipe, style.Name)
	return n, nil
}

// Get returns a note by ID.
func (k *Keeper) Get(ctx context.Context, id string) (*domain.Note, error) {
	return k.store.Load(ctx, id)
}

// List returns all notes, newest first.
func (k *Keeper) List(ctx context.Context) ([]*domain.Note, error) {
	return k.store.List(ctx)
}

// Favorites returns favourite notes, newest first.
func (k *Keeper) Favorites(ctx context.Context) ([]*domain.Note, error) {
	all, err := k.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Note
	for _, n := range all {
		if n.Favorite {
			out = append(out, n)
		}
	}
	return out, nil
}

// Search returns notes whose text, ingredients or instructions contain q.
func (k *Keeper) Search(ctx context.Context, q string) ([]*domain.Note, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	all, err := k.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return all, nil
	}
	var out []*domain.Note
	for _, n := range all {
		if matches(n, q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func matches(n *domain.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Text), q) {
		return true
	}
	for _, lines := range [][]string{n.Ingredients, n.Instructions} {
		for _, l := range lines {
			if strings.Contains(strings.ToLower(l), q) {
				return true
			}
		}
	}
	return false
}

// ToggleFavorite flips the favourite flag.
func (k *Keeper) ToggleFavorite(ctx context.Context, id string) (*domain.Note, error) {
	n, err := k.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading note %s: %w", id, err)
	}
	n.Favorite = !n.Favorite
	if err := k.store.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("saving note: %w", err)
	}
	return n, nil
}

// Delete removes a note.
func (k *Keeper) Delete(ctx context.Context, id string) error {
	if err := k.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// Resolve finds a note from a user reference: a 1-based position in the
// newest-first list, an ID or ID prefix, or a unique text prefix.
func (k *Keeper) Resolve(ctx context.Context, ref string) (*domain.Note, error) {
	ref = strings.TrimSpace(ref)
	all, err := k.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, fmt.Errorf("which note? %w", domain.ErrNotFound)
	}
	if i, err := strconv.Atoi(ref); err == nil {
		if i >= 1 && i <= len(all) {
			return all[i-1], nil
		}
		return nil, fmt.Errorf("note #%d: %w", i, domain.ErrNotFound)
	}

	lower := strings.ToLower(ref)
	var match *domain.Note
	for _, n := range all {
		if n.ID == ref {
			return n, nil
		}
		if (len(ref) >= 4 && strings.HasPrefix(n.ID, ref)) || strings.HasPrefix(strings.ToLower(n.Text), lower) {
			if match != nil {
				return nil, fmt.Errorf("%q matches more than one note", ref)
			}
			match = n
		}
	}
	if match == nil {
		return nil, fmt.Errorf("note %q: %w", ref, domain.ErrNotFound)
	}
	return match, nil
}

// ── Ingredient conversion ────────────────────────────────────────

// ConvertedLine is one ingredient line after conversion. Err is set, and
// Text is the original line, when the line could not be converted.
type ConvertedLine struct {
	Original string
	Text     string
	Err      error
}

// ConvertIngredients rewrites every "<amount> <unit> <rest>" ingredient line
// of a recipe note into the target unit. The note itself is not modified.
func (k *Keeper) ConvertIngredients(ctx context.Context, id string, to domain.Unit) ([]ConvertedLine, error) {
	n, err := k.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading note %s: %w", id, err)
	}
	if !n.IsRecipe || len(n.Ingredients) == 0 {
		return nil, fmt.Errorf("note has no ingredients: %w", domain.ErrNotFound)
	}

	out := make([]ConvertedLine, 0, len(n.Ingredients))
	for _, line := range n.Ingredients {
		text, err := ConvertLine(line, to)
		if err != nil {
			k.log.Debug("ingredient %q not converted: %v", line, err)
			out = append(out, ConvertedLine{Original: line, Text: line, Err: err})
			continue
		}
		out = append(out, ConvertedLine{Original: line, Text: text})
	}
	return out, nil
}

var errNoQuantity = errors.New("no leading quantity")

// ConvertLine converts the leading quantity of an ingredient line:
// "2 cups flour" to tablespoons gives "32.00 tablespoons flour".
func ConvertLine(line string, to domain.Unit) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", errNoQuantity
	}

	// Longest amount prefix (1 or 2 tokens, for "1 1/2"), then longest unit
	// (up to 2 tokens, for "fl oz").
	for amountLen := 2; amountLen >= 1; amountLen-- {
		if amountLen >= len(fields) {
			continue
		}
		amount := convert.ParseAmount(strings.Join(fields[:amountLen], " "))
		if math.IsNaN(amount) {
			continue
		}
		for unitLen := 2; unitLen >= 1; unitLen-- {
			if amountLen+unitLen > len(fields) {
				continue
			}
			from, err := domain.ParseUnit(strings.Join(fields[amountLen:amountLen+unitLen], " "))
			if err != nil {
				continue
			}
			v, err := convert.Convert(amount, from, to)
			if err != nil {
				return "", err
			}
			rest := strings.Join(fields[amountLen+unitLen:], " ")
			out := convert.FormatValue(v) + " " + string(to)
			if rest != "" {
				out += " " + rest
			}
			return out, nil
		}
	}
	return "", errNoQuantity
}

func nonBlank(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
