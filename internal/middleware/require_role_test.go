package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func gateRouter(identify gin.HandlerFunc, gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{}
	if identify != nil {
		handlers = append(handlers, identify)
	}
	handlers = append(handlers, gate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protege", handlers...)
	return r
}

// Fermé par défaut : sans identité, la vérification de rôle n'est même
// pas tentée — la requête est rejetée avant toute lecture en base.
func TestRequireRole_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protege", nil)
	w := httptest.NewRecorder()
	gateRouter(nil, RequireRole("admin")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Utilisateur non authentifié")
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protege", nil)
	w := httptest.NewRecorder()
	gateRouter(nil, RequireAdmin()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSeller_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protege", nil)
	w := httptest.NewRecorder()
	gateRouter(nil, RequireSeller()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
