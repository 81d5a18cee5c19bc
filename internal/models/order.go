package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts possibles d'une commande
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusFailed   = "failed"
	OrderStatusRefunded = "refunded"
)

// Order est l'enregistrement canonique d'un achat.
// La ligne est indexée par l'ID de session Stripe : c'est le seul identifiant
// partagé entre l'acheteur, le serveur et Stripe, et donc l'ancre de toute
// réconciliation ultérieure.
type Order struct {
	StripeSessionID string      `json:"stripe_session_id"`
	OrderID         gocql.UUID  `json:"id"`
	StoreID         *gocql.UUID `json:"store_id,omitempty"` // nil = vente plateforme
	BuyerID         *string     `json:"buyer_id,omitempty"` // nil = achat invité
	BuyerEmail      string      `json:"buyer_email"`
	Currency        string      `json:"currency"`
	TotalAmount     float64     `json:"total_amount"`
	Status          string      `json:"status"`
	PaymentIntentID string      `json:"stripe_payment_intent_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CanTransitionOrder indique si un changement de statut est autorisé.
// Les transitions sont monotones : pending→{paid,failed}, paid→refunded.
func CanTransitionOrder(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusFailed
	case OrderStatusPaid:
		return to == OrderStatusRefunded
	default:
		return false
	}
}
