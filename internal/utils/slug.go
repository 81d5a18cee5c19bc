package utils

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeSlug normalise un nom en jeton URL-safe : minuscules, toute suite
// de caractères non alphanumériques devient un seul tiret, tirets de bord retirés.
func NormalizeSlug(name string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingSep = false
		} else {
			pendingSep = true
		}
	}

	return b.String()
}

// GenerateSlug produit un slug globalement unique sans lecture préalable :
// nom normalisé + suffixe temporel en base 36. Deux boutiques au nom
// identique obtiennent des slugs distincts.
func GenerateSlug(name string) string {
	base := NormalizeSlug(name)
	suffix := strconv.FormatInt(time.Now().UnixNano(), 36)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
