package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreferencesFlagObject(t *testing.T) {
	p, err := ParsePreferences([]byte(`{"fumeur": true, "animaux": false, "tags": ["musique", "Musique", " "]}`))
	require.NoError(t, err)
	assert.True(t, p.Smoker)
	assert.False(t, p.Animals)
	assert.Equal(t, []string{"musique"}, p.Tags)
}

func TestParsePreferencesLabelArray(t *testing.T) {
	p, err := ParsePreferences([]byte(`["Fumeur", "animaux", "musique"]`))
	require.NoError(t, err)
	assert.True(t, p.Smoker)
	assert.True(t, p.Animals)
	assert.Equal(t, []string{"musique"}, p.Tags)
}

func TestParsePreferencesEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		p, err := ParsePreferences([]byte(raw))
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, Preferences{}, p)
	}
}

func TestParsePreferencesInvalid(t *testing.T) {
	_, err := ParsePreferences([]byte(`{broken`))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	in := Preferences{Smoker: true, Tags: []string{"musique", "musique", "discussion"}}
	out, err := ParsePreferences([]byte(in.Encode()))
	require.NoError(t, err)
	assert.True(t, out.Smoker)
	assert.Equal(t, []string{"musique", "discussion"}, out.Tags)
}
