package pa

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/customer"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
)

// Appels externes du checkout. Indirections de package : les tests les
// remplacent pour exercer les chemins de sortie sans Stripe ni ScyllaDB.
var (
	newCheckoutSession  = session.New
	persistPendingOrder = insertPendingOrder
)

// CreateCheckoutSession transforme un instantané de panier en session de
// paiement Stripe hébergée. L'identité est optionnelle (checkout invité) ;
// l'écriture de la commande locale est best-effort : la garantie côté
// acheteur est l'URL de paiement, pas la ligne comptable.
func CreateCheckoutSession(c *gin.Context) {
	var req struct {
		Items   []models.CartItem `json:"items"`
		StoreID string            `json:"storeId"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// ✅ 1. Valider le panier avant tout appel externe
	if err := ValidateCart(req.Items); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var storeUUID *gocql.UUID
	if req.StoreID != "" {
		parsed, err := uuid.Parse(req.StoreID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
			return
		}
		gu := gocql.UUID(parsed)
		storeUUID = &gu
	}

	// ✅ 2. Identité optionnelle (posée par OptionalAuth)
	userID := c.GetString("user_id")
	userEmail := c.GetString("email")
	if userEmail != "" {
		log.Printf("👤 Checkout authentifié: %s", userEmail)
	}

	// ✅ 3. Réutiliser le client Stripe existant pour cet e-mail
	// (évite les doublons et conserve les moyens de paiement enregistrés)
	var customerID string
	if userEmail != "" {
		listParams := &stripe.CustomerListParams{Email: stripe.String(userEmail)}
		listParams.Limit = stripe.Int64(1)
		iter := customer.List(listParams)
		if iter.Next() {
			customerID = iter.Customer().ID
			log.Printf("💳 Client Stripe existant réutilisé: %s", customerID)
		}
	}

	// ✅ 4. Construire les line items (instantané du panier, centimes)
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(toMinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	// ✅ 5. Redirections dérivées de l'origine déclarée (avec repli)
	origin := resolveOrigin(c.GetHeader("Origin"))

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(origin + "/payment-success"),
		CancelURL:  stripe.String(origin + "/"),
	}

	if customerID != "" {
		params.Customer = stripe.String(customerID)
	} else if userEmail != "" {
		params.CustomerEmail = stripe.String(userEmail)
	}

	// Instantané id/type du panier pour la livraison des articles virtuels
	snapshot := make([]map[string]string, 0, len(req.Items))
	for _, item := range req.Items {
		snapshot = append(snapshot, map[string]string{"id": item.ID, "type": item.Type})
	}
	if snapshotJSON, err := json.Marshal(snapshot); err == nil {
		params.AddMetadata("items", string(snapshotJSON))
	}
	if req.StoreID != "" {
		params.AddMetadata("store_id", req.StoreID)
	}

	s, err := newCheckoutSession(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 Session de paiement créée: %s (%.2f$)", s.ID, calcTotal(req.Items))

	// ✅ 6. Vente rattachée à une boutique : commande pending, best-effort.
	// Un échec ici est loggé mais ne bloque jamais l'URL de paiement ;
	// la ligne se réconcilie plus tard via l'ID de session Stripe.
	if storeUUID != nil {
		if err := persistPendingOrder(s.ID, *storeUUID, userID, userEmail, req.Items); err != nil {
			log.Printf("⚠️ [PERSISTENCE] Écriture commande échouée pour session %s: %v", s.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

// insertPendingOrder insère la commande pending, indexée par l'ID de
// session Stripe (l'ancre de réconciliation).
func insertPendingOrder(sessionID string, storeID gocql.UUID, userID, userEmail string, items []models.CartItem) error {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	buyerEmail := userEmail
	if buyerEmail == "" {
		// L'e-mail sera collecté par la page de paiement Stripe
		buyerEmail = "guest"
	}

	var buyerID *string
	if userID != "" {
		buyerID = &userID
	}

	now := time.Now()
	return ordersSession.Query(`
		INSERT INTO orders (stripe_session_id, order_id, store_id, buyer_id, buyer_email, currency, total_amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, gocql.TimeUUID(), storeID, buyerID, buyerEmail,
		"usd", calcTotal(items), models.OrderStatusPending, now, now,
	).Exec()
}
