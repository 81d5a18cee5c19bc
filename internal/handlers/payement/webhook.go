package pa

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
	"corecms_back_end/internal/utils"
)

//
// 🔔 Stripe Webhook : réconciliation des commandes
//
// Seul ce handler fait évoluer le statut d'une commande. Chaque transition
// est une écriture conditionnelle (IF status = ...) : les événements Stripe
// rejoués ou arrivés dans le désordre ne cassent pas la monotonie
// pending→{paid,failed}, paid→refunded.
//
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture corps échouée"})
		return
	}

	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	event, err := webhook.ConstructEvent(payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err == nil {
			handleSessionCompleted(cs)
		}

	case "checkout.session.expired":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err == nil {
			transitionOrder(cs.ID, models.OrderStatusPending, models.OrderStatusFailed)
		}

	case "charge.refunded":
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err == nil {
			handleChargeRefunded(ch)
		}
	}

	c.Status(http.StatusOK)
}

// handleSessionCompleted passe la commande en paid et envoie le reçu.
func handleSessionCompleted(cs stripe.CheckoutSession) {
	log.Printf("✅ Paiement confirmé : %s (%.2f$)", cs.ID, float64(cs.AmountTotal)/100)

	if !transitionOrder(cs.ID, models.OrderStatusPending, models.OrderStatusPaid) {
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Printf("⚠️ [PERSISTENCE] Session orders indisponible: %v", err)
		return
	}

	// Mémoriser le payment intent pour retrouver la commande lors d'un
	// remboursement (charge.refunded ne porte pas l'ID de session)
	if cs.PaymentIntent != nil && cs.PaymentIntent.ID != "" {
		if err := ordersSession.Query(`
			UPDATE orders SET stripe_payment_intent_id = ?, updated_at = ? WHERE stripe_session_id = ?`,
			cs.PaymentIntent.ID, time.Now(), cs.ID).Exec(); err != nil {
			log.Printf("⚠️ [PERSISTENCE] Enregistrement payment intent échoué: %v", err)
		}
		if err := ordersSession.Query(`
			INSERT INTO orders_by_intent (payment_intent_id, stripe_session_id) VALUES (?, ?)`,
			cs.PaymentIntent.ID, cs.ID).Exec(); err != nil {
			log.Printf("⚠️ [PERSISTENCE] Index orders_by_intent échoué: %v", err)
		}
	}

	sendReceipt(cs.ID)
}

// handleChargeRefunded retrouve la commande via le payment intent et la
// passe en refunded.
func handleChargeRefunded(ch stripe.Charge) {
	if ch.PaymentIntent == nil || ch.PaymentIntent.ID == "" {
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Printf("⚠️ [PERSISTENCE] Session orders indisponible: %v", err)
		return
	}

	var sessionID string
	err = ordersSession.Query(`
		SELECT stripe_session_id FROM orders_by_intent WHERE payment_intent_id = ?`,
		ch.PaymentIntent.ID).Scan(&sessionID)
	if err != nil {
		log.Printf("⚠️ Remboursement %s : aucune commande pour le payment intent %s", ch.ID, ch.PaymentIntent.ID)
		return
	}

	log.Printf("💰 Remboursement : %s (session %s)", ch.ID, sessionID)
	transitionOrder(sessionID, models.OrderStatusPaid, models.OrderStatusRefunded)
}

// transitionOrder applique une transition de statut par écriture
// conditionnelle. Le couple (from, to) est validé par la matrice de
// transitions avant toute requête : la monotonie est définie à un seul
// endroit. Retourne false si la condition n'était plus vraie (événement
// rejoué, ou session jamais enregistrée localement — ce cas est loggé
// pour la réconciliation).
func transitionOrder(sessionID, from, to string) bool {
	if !models.CanTransitionOrder(from, to) {
		log.Printf("⚠️ Transition %s→%s non autorisée pour %s", from, to, sessionID)
		return false
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Printf("⚠️ [PERSISTENCE] Session orders indisponible: %v", err)
		return false
	}

	var prevStatus string
	applied, err := ordersSession.Query(`
		UPDATE orders SET status = ?, updated_at = ? WHERE stripe_session_id = ? IF status = ?`,
		to, time.Now(), sessionID, from,
	).ScanCAS(&prevStatus)
	if err != nil {
		log.Printf("⚠️ [PERSISTENCE] Transition %s→%s échouée pour %s: %v", from, to, sessionID, err)
		return false
	}

	if !applied {
		log.Printf("⚠️ Transition %s→%s ignorée pour %s (statut actuel: %q)", from, to, sessionID, prevStatus)
		return false
	}

	log.Printf("📦 Commande %s : %s → %s", sessionID, from, to)
	return true
}

// sendReceipt envoie le reçu à l'acheteur, PDF joint si le rendu aboutit.
// Tout échec ici est un trou opérationnel loggé, jamais une annulation du
// paiement déjà encaissé.
func sendReceipt(sessionID string) {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return
	}

	var order models.Order
	order.StripeSessionID = sessionID
	err = ordersSession.Query(`
		SELECT order_id, buyer_email, currency, total_amount FROM orders WHERE stripe_session_id = ?`,
		sessionID).Scan(&order.OrderID, &order.BuyerEmail, &order.Currency, &order.TotalAmount)
	if err != nil {
		log.Printf("⚠️ Reçu non envoyé, commande introuvable pour %s: %v", sessionID, err)
		return
	}

	if order.BuyerEmail == "" || order.BuyerEmail == "guest" {
		return
	}

	var pdf []byte
	pdf, err = utils.RenderReceiptPDF(utils.GetFrontendReceiptBaseURL(), sessionID)
	if err != nil {
		log.Printf("⚠️ Rendu PDF du reçu échoué pour %s: %v", sessionID, err)
		pdf = nil
	}

	html := utils.GenerateReceiptHTML(order)
	if err := utils.SendEmail(order.BuyerEmail, "✅ Paiement confirmé - CoreCMS", html, pdf, "recu_corecms.pdf"); err != nil {
		log.Printf("⚠️ Envoi du reçu échoué pour %s: %v", sessionID, err)
	}
}
