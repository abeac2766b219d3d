package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

// execute runs the root command with a throwaway config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"dark\"\nlog_file = \"stderr\"\n"), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", path}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"1", "cup", "tbsp"}, "1 cups = 16.00 tablespoons\n"},
		{[]string{"1", "tbsp", "tsp"}, "1 tablespoons = 3.00 teaspoons\n"},
		{[]string{"1", "cups", "ml"}, "1 cups = 236.59 milliliters\n"},
		{[]string{"100", "c", "f"}, "100 celsius = 212.00 fahrenheit\n"},
		{[]string{"--", "-40", "c", "f"}, "-40 celsius = -40.00 fahrenheit\n"},
		{[]string{"", "cups", "tbsp"}, "0 cups = 0.00 tablespoons\n"},
		{[]string{"1/2", "cup", "fl oz"}, "0.5 cups = 4.00 fluid_ounces\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, append([]string{"convert"}, tt.args...)...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}
}

func TestConvertCommandErrors(t *testing.T) {
	_, err := execute(t, "convert", "1", "cup", "celsius")
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)

	_, err = execute(t, "convert", "lots", "cup", "tbsp")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = execute(t, "convert", "1", "cup", "bananas")
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)

	_, err = execute(t, "convert", "1", "cup")
	assert.Error(t, err)
}

func TestConvertCommandJSON(t *testing.T) {
	out, err := execute(t, "convert", "100", "c", "f", "--json")
	require.NoError(t, err)

	var got conversionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "celsius", got.From)
	assert.Equal(t, "fahrenheit", got.To)
	assert.InDelta(t, 212, got.Value, 1e-9)
	assert.Equal(t, "100 celsius = 212.00 fahrenheit", got.Text)
}

func TestConvertCommandNaN(t *testing.T) {
	out, err := execute(t, "convert", "nan", "cup", "tbsp", "--json")
	require.NoError(t, err)

	var got conversionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Zero(t, got.Value)
	assert.Contains(t, got.Text, "NaN")
}

func TestUnitsCommand(t *testing.T) {
	out, err := execute(t, "units")
	require.NoError(t, err)
	for _, want := range []string{"volume/mass:", "temperature:", "cups", "fluid_ounces", "fl oz", "°F"} {
		assert.Contains(t, out, want)
	}

	out, err = execute(t, "units", "--family", "temp")
	require.NoError(t, err)
	assert.Contains(t, out, "celsius")
	assert.NotContains(t, out, "cups")

	_, err = execute(t, "units", "--family", "length")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "kitchenpal dev\n", out)
}

func TestFlagsOverrideConfig(t *testing.T) {
	_, err := execute(t, "--theme", "light", "--voice", "uk", "--no-ai", "--quiet", "version")
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "uk", cfg.Speech.Voice)
	assert.False(t, cfg.Chat.Enabled)
	assert.Equal(t, "off", cfg.LogLevel)

	_, err = execute(t, "--theme", "sepia", "version")
	assert.Error(t, err)
}

func TestParseFamily(t *testing.T) {
	f, err := parseFamily("Weight")
	require.NoError(t, err)
	assert.Equal(t, domain.FamilyVolumeMass, f)

	_, err = parseFamily("")
	assert.Error(t, err)
}
