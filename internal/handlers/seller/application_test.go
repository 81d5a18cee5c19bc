package seller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postApplication(t *testing.T, body string, identify func(*gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identify != nil {
		r.Use(identify)
	}
	r.POST("/api/seller/apply", SubmitApplication)

	req := httptest.NewRequest(http.MethodPost, "/api/seller/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitApplication_MalformedJSON(t *testing.T) {
	w := postApplication(t, `{"server_name": `, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Données invalides")
}

func TestSubmitApplication_MissingRequiredFields(t *testing.T) {
	// server_ip et reason manquants
	w := postApplication(t, `{"server_name": "SkyWars FR"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Données invalides")
}

// discord_url est optionnel, mais sans identité posée par le middleware
// JWT la requête s'arrête avant toute écriture.
func TestSubmitApplication_Unauthenticated(t *testing.T) {
	body := `{"server_name": "SkyWars FR", "server_ip": "play.skywars.fr", "reason": "Serveur actif depuis 2 ans"}`
	w := postApplication(t, body, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Utilisateur non authentifié")
}
