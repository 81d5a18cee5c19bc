package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"nom simple", "Dream Server", "dream-server"},
		{"ponctuation finale", "Dream Server!!", "dream-server"},
		{"séparateurs multiples", "Mon  --  Serveur", "mon-serveur"},
		{"séparateurs de bord", "***Epic PvP***", "epic-pvp"},
		{"déjà normalisé", "epic-pvp", "epic-pvp"},
		{"chiffres conservés", "Skyblock 2024", "skyblock-2024"},
		{"uniquement symboles", "!!!", ""},
		{"vide", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeSlug(tc.input))
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	slug := GenerateSlug("Dream Server!!")

	assert.True(t, strings.HasPrefix(slug, "dream-server-"), "slug: %s", slug)
	// Le suffixe est non vide et URL-safe
	suffix := strings.TrimPrefix(slug, "dream-server-")
	assert.NotEmpty(t, suffix)
	assert.NotContains(t, suffix, " ")
}

func TestGenerateSlug_DistinctForSameName(t *testing.T) {
	// Deux candidatures avec le même nom de serveur obtiennent des slugs
	// distincts, sans lecture préalable en base
	a := GenerateSlug("Dream Server")
	b := GenerateSlug("Dream Server")

	assert.NotEqual(t, a, b)
}

func TestGenerateSlug_NameWithoutAlphanumerics(t *testing.T) {
	slug := GenerateSlug("!!!")

	// Pas de tiret orphelin : le slug est le suffixe seul
	assert.NotEmpty(t, slug)
	assert.False(t, strings.HasPrefix(slug, "-"))
}
