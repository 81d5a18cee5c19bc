package utils

import (
	"github.com/skip2/go-qrcode"
)

// GenerateStoreQR encode l'URL publique d'une boutique en QR code PNG,
// que les vendeurs affichent en jeu ou sur Discord.
func GenerateStoreQR(storeURL string) ([]byte, error) {
	return qrcode.Encode(storeURL, qrcode.Medium, 256)
}
