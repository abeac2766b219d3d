package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
	"github.com/hammamikhairi/kitchenpal/internal/storage"
)

func newTestKeeper() *Keeper {
	log := logger.New(logger.LevelOff, nil)
	k := NewKeeper(storage.NewMemoryNoteStore(log), log)
	// Deterministic, strictly increasing clock.
	base := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	var tick int
	k.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return k
}

func TestAddRejectsEmpty(t *testing.T) {
	k := newTestKeeper()
	_, err := k.Add(context.Background(), domain.NoteDraft{Text: "  \n\t "})
	assert.ErrorIs(t, err, domain.ErrEmptyNote)

	_, err = k.Add(context.Background(), domain.NoteDraft{Text: "x", Style: "Neon"})
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

func TestAddRecipeFiltersBlankLines(t *testing.T) {
	k := newTestKeeper()
	n, err := k.Add(context.Background(), domain.NoteDraft{
		Text:         "  Pancakes ",
		Style:        "recipe",
		IsRecipe:     true,
		Ingredients:  []string{"1 cup flour", "", "   ", "2 tbsp sugar"},
		Instructions: []string{"", "Mix", "Fry"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", n.Text)
	assert.Equal(t, "Recipe", n.Style.Name)
	assert.Equal(t, "#FFF5E6", n.Style.Background)
	assert.Equal(t, []string{"1 cup flour", "2 tbsp sugar"}, n.Ingredients)
	assert.Equal(t, []string{"Mix", "Fry"}, n.Instructions)
}

func TestAddPlainNoteDropsRecipeFields(t *testing.T) {
	k := newTestKeeper()
	n, err := k.Add(context.Background(), domain.NoteDraft{Text: "buy milk", Ingredients: []string{"milk"}})
	require.NoError(t, err)
	assert.Nil(t, n.Ingredients)
	assert.Equal(t, "Default", n.Style.Name)
}

func TestListNewestFirstAndFavorites(t *testing.T) {
	k := newTestKeeper()
	ctx := context.Background()

	first, err := k.Add(ctx, domain.NoteDraft{Text: "first"})
	require.NoError(t, err)
	_, err = k.Add(ctx, domain.NoteDraft{Text: "second"})
	require.NoError(t, err)

	list, err := k.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text)

	n, err := k.ToggleFavorite(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, n.Favorite)

	favs, err := k.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, first.ID, favs[0].ID)

	n, err = k.ToggleFavorite(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, n.Favorite)

	require.NoError(t, k.Delete(ctx, first.ID))
	assert.ErrorIs(t, k.Delete(ctx, first.ID), domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	k := newTestKeeper()
	ctx := context.Background()

	_, err := k.Add(ctx, domain.NoteDraft{Text: "Shopping list", Style: "Shopping"})
	require.NoError(t, err)
	_, err = k.Add(ctx, domain.NoteDraft{Text: "Soup", IsRecipe: true, Ingredients: []string{"2 cups stock"}, Instructions: []string{"Simmer gently"}})
	require.NoError(t, err)

	got, err := k.Search(ctx, "STOCK")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Soup", got[0].Text)

	got, err = k.Search(ctx, "simmer")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = k.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestResolve(t *testing.T) {
	k := newTestKeeper()
	ctx := context.Background()

	soup, err := k.Add(ctx, domain.NoteDraft{Text: "Soup"})
	require.NoError(t, err)
	salad, err := k.Add(ctx, domain.NoteDraft{Text: "Salad"})
	require.NoError(t, err)

	n, err := k.Resolve(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, salad.ID, n.ID)

	n, err = k.Resolve(ctx, "sou")
	require.NoError(t, err)
	assert.Equal(t, soup.ID, n.ID)

	_, err = k.Resolve(ctx, "s")
	assert.Error(t, err)

	_, err = k.Resolve(ctx, "7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvertLine(t *testing.T) {
	tests := []struct {
		line string
		to   domain.Unit
		want string
	}{
		{"2 cups flour", domain.Tablespoons, "32.00 tablespoons flour"},
		{"1 1/2 cup sugar", domain.Milliliters, "354.88 milliliters sugar"},
		{"3 fl oz cream", domain.Tablespoons, "6.00 tablespoons cream"},
		{"1 tbsp", domain.Teaspoons, "3.00 teaspoons"},
		{"100g butter", domain.Ounces, ""},
	}
	for _, tt := range tests {
		got, err := ConvertLine(tt.line, tt.to)
		if tt.want == "" {
			assert.Error(t, err, tt.line)
			continue
		}
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got)
	}

	_, err := ConvertLine("3 eggs", domain.Grams)
	assert.Error(t, err)

	_, err = ConvertLine("2 cups milk", domain.Celsius)
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

func TestConvertIngredients(t *testing.T) {
	k := newTestKeeper()
	ctx := context.Background()

	n, err := k.Add(ctx, domain.NoteDraft{
		Text:        "Cookies",
		IsRecipe:    true,
		Ingredients: []string{"1 cup butter", "2 eggs", "2 tsp vanilla"},
	})
	require.NoError(t, err)

	lines, err := k.ConvertIngredients(ctx, n.ID, domain.Tablespoons)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "16.00 tablespoons butter", lines[0].Text)
	assert.Error(t, lines[1].Err)
	assert.Equal(t, "2 eggs", lines[1].Text)
	assert.Equal(t, "0.67 tablespoons vanilla", lines[2].Text)

	plain, err := k.Add(ctx, domain.NoteDraft{Text: "just a note"})
	require.NoError(t, err)
	_, err = k.ConvertIngredients(ctx, plain.ID, domain.Grams)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 5, 2024", FormatDate(time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC)))
}

func TestPresets(t *testing.T) {
	ps := Presets()
	require.Len(t, ps, 4)
	for _, p := range ps {
		assert.Equal(t, "#333333", p.Foreground)
		assert.Equal(t, 16, p.FontSize)
	}
	p, err := Preset("IMPORTANT")
	require.NoError(t, err)
	assert.Equal(t, "#FFE6E6", p.Background)
}
