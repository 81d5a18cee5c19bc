package pa

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"corecms_back_end/internal/models"
)

// Sans signature Stripe valide, le webhook refuse le payload avant tout
// traitement : aucune commande ne peut être mutée par un appel forgé.
func TestStripeWebhook_RejectsUnsignedPayload(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/stripe/webhook", StripeWebhook)

	body := `{"type": "checkout.session.completed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Signature invalide")
}

// Les transitions du webhook passent par la matrice de statuts : un
// couple interdit est refusé avant toute écriture.
func TestTransitionOrder_RejectsDisallowedPair(t *testing.T) {
	assert.False(t, transitionOrder("cs_test", models.OrderStatusPaid, models.OrderStatusFailed))
	assert.False(t, transitionOrder("cs_test", models.OrderStatusRefunded, models.OrderStatusPaid))
	assert.False(t, transitionOrder("cs_test", models.OrderStatusFailed, models.OrderStatusPaid))
	assert.False(t, transitionOrder("cs_test", models.OrderStatusPending, models.OrderStatusRefunded))
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/stripe/webhook", StripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
