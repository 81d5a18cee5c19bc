package pa

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"

	"corecms_back_end/internal/models"
)

func checkoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/checkout", CreateCheckoutSession)
	return r
}

func postCheckout(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	checkoutRouter().ServeHTTP(w, req)
	return w
}

// Panier vide : erreur de validation, aucune session de paiement créée,
// aucune commande écrite.
func TestCreateCheckoutSession_EmptyCart(t *testing.T) {
	w := postCheckout(t, gin.H{"items": []gin.H{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Panier vide")
}

func TestCreateCheckoutSession_InvalidPrice(t *testing.T) {
	w := postCheckout(t, gin.H{
		"items": []gin.H{
			{"id": "rank-vip", "type": "rank", "name": "VIP", "price": -5.0, "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Prix invalide")
}

func TestCreateCheckoutSession_InvalidQuantity(t *testing.T) {
	w := postCheckout(t, gin.H{
		"items": []gin.H{
			{"id": "rank-vip", "type": "rank", "name": "VIP", "price": 9.99, "quantity": 0},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantité invalide")
}

// Le storeId est validé avant tout appel externe
func TestCreateCheckoutSession_InvalidStoreID(t *testing.T) {
	w := postCheckout(t, gin.H{
		"items": []gin.H{
			{"id": "rank-vip", "type": "rank", "name": "VIP", "price": 9.99, "quantity": 1},
		},
		"storeId": "pas-un-uuid",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ID boutique invalide")
}

// La garantie côté acheteur est l'URL de paiement : un échec d'écriture
// de la commande locale est loggé mais ne bloque jamais la réponse.
func TestCreateCheckoutSession_OrderWriteFailureStillReturnsURL(t *testing.T) {
	origNew, origPersist := newCheckoutSession, persistPendingOrder
	defer func() { newCheckoutSession, persistPendingOrder = origNew, origPersist }()

	newCheckoutSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return &stripe.CheckoutSession{
			ID:  "cs_test_123",
			URL: "https://checkout.stripe.com/c/pay/cs_test_123",
		}, nil
	}

	persistedSession := ""
	persistPendingOrder = func(sessionID string, storeID gocql.UUID, userID, userEmail string, items []models.CartItem) error {
		persistedSession = sessionID
		return errors.New("scylla indisponible")
	}

	w := postCheckout(t, gin.H{
		"items": []gin.H{
			{"id": "rank-vip", "type": "rank", "name": "VIP", "price": 9.99, "quantity": 1},
		},
		"storeId": "0eb2c1a6-1111-2222-3333-444455556666",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://checkout.stripe.com/c/pay/cs_test_123")
	assert.Equal(t, "cs_test_123", persistedSession)
}

// L'échec du processeur de paiement remonte tel quel, sans état partiel
// visible côté acheteur.
func TestCreateCheckoutSession_UpstreamFailure(t *testing.T) {
	origNew := newCheckoutSession
	defer func() { newCheckoutSession = origNew }()

	newCheckoutSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("paiement refusé par l'amont")
	}

	w := postCheckout(t, gin.H{
		"items": []gin.H{
			{"id": "rank-vip", "type": "rank", "name": "VIP", "price": 9.99, "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "paiement refusé")
}

func TestCreateCheckoutSession_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader([]byte("{pas du json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	checkoutRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
