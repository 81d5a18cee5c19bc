package pa

import (
	"fmt"
	"math"
	"net/url"
	"os"

	"corecms_back_end/internal/models"
)

// Origine de secours connue valide : une paire success/cancel doit toujours
// pouvoir être construite, même sans header Origin.
const defaultOrigin = "https://corecms.app"

// ValidateCart rejette un panier invalide avant tout appel externe :
// panier vide, prix non strictement positif, quantité nulle ou négative.
func ValidateCart(items []models.CartItem) error {
	if len(items) == 0 {
		return &models.ValidationError{Message: "Panier vide"}
	}

	for _, item := range items {
		if item.Price <= 0 {
			return &models.ValidationError{Message: fmt.Sprintf("Prix invalide pour l'article %q", item.Name)}
		}
		if item.Quantity < 1 {
			return &models.ValidationError{Message: fmt.Sprintf("Quantité invalide pour l'article %q", item.Name)}
		}
	}

	return nil
}

// calcTotal calcule le montant total d'un panier
func calcTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// toMinorUnits convertit un prix en centimes, arrondi au demi-supérieur
func toMinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + 0.5))
}

// resolveOrigin valide l'origine déclarée par l'appelant. Si elle est
// absente ou malformée, on retombe sur FRONTEND_URL puis sur l'origine
// par défaut : la redirection doit toujours être constructible.
func resolveOrigin(rawOrigin string) string {
	if rawOrigin != "" {
		u, err := url.Parse(rawOrigin)
		if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return rawOrigin
		}
	}

	if front := os.Getenv("FRONTEND_URL"); front != "" {
		return front
	}

	return defaultOrigin
}
