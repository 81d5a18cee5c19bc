package utils

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

const apiKeyBytes = 32 // 256 bits d'entropie

// GenerateAPIKey génère une clé d'API boutique et son hash bcrypt.
// Seul le hash est persisté ; le clair n'est montré qu'une fois au vendeur.
func GenerateAPIKey() (plaintext string, hash string, err error) {
	raw := make([]byte, apiKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}

	plaintext = "csk_" + base64.RawURLEncoding.EncodeToString(raw)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	return plaintext, string(hashed), nil
}

// VerifyAPIKey compare une clé présentée au hash stocké.
func VerifyAPIKey(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
