package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corecms_back_end/internal/models"
	"corecms_back_end/internal/utils"
)

func identityRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"email":   c.GetString("email"),
		})
	})
	return r
}

func whoami(t *testing.T, mw gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	identityRouter(mw).ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingToken(t *testing.T) {
	w := whoami(t, AuthRequired(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token manquant")
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	w := whoami(t, AuthRequired(), "NotBearer abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token invalide")
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := whoami(t, AuthRequired(), "Bearer pas.un.jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token invalide")
}

// Une clé vide rendrait tout token forgeable : même si JWT_SECRET est
// absent de l'environnement, un JWT signé avec "" est refusé.
func TestAuthRequired_EmptySecretRejectsForgedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "intrus",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, err := token.SignedString([]byte(""))
	require.NoError(t, err)

	w := whoami(t, AuthRequired(), "Bearer "+forged)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "intrus")
}

func TestOptionalAuth_EmptySecretForgedTokenIsGuest(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "intrus",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, err := token.SignedString([]byte(""))
	require.NoError(t, err)

	w := whoami(t, OptionalAuth(), "Bearer "+forged)

	// Le token forgé est ignoré : la requête passe en invité, sans identité
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT(models.User{ID: "u-42", Email: "joueur@corecms.app", Name: "Joueur"})
	require.NoError(t, err)

	w := whoami(t, AuthRequired(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-42")
	assert.Contains(t, w.Body.String(), "joueur@corecms.app")
}

// Un token absent ou invalide n'est pas une erreur : la requête passe en
// invité, sans identité dans le contexte.
func TestOptionalAuth_GuestPassThrough(t *testing.T) {
	w := whoami(t, OptionalAuth(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestOptionalAuth_InvalidTokenIgnored(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := whoami(t, OptionalAuth(), "Bearer corrompu")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT(models.User{ID: "u-7", Email: "vendeur@corecms.app", Name: "Vendeur"})
	require.NoError(t, err)

	w := whoami(t, OptionalAuth(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-7")
}
