package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// jwtSecret retourne la clé de signature. Une clé vide est refusée :
// n'importe qui peut signer un token avec "".
func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET non configuré")
	}
	return []byte(secret), nil
}

// parseBearer vérifie un header Authorization et retourne les claims.
func parseBearer(authHeader string) (jwt.MapClaims, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("format Authorization invalide")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return jwtSecret()
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalides")
	}

	if _, ok := claims["user_id"].(string); !ok {
		return nil, fmt.Errorf("user_id manquant")
	}

	return claims, nil
}

// AuthRequired exige un token JWT valide et pose user_id / email / name
// dans le contexte Gin.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		claims, err := parseBearer(authHeader)
		if err != nil {
			log.Printf("❌ Erreur parsing JWT: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Set("email", claims["email"])
		c.Set("name", claims["name"])
		c.Next()
	}
}

// OptionalAuth extrait l'identité si un token valide est présent, sinon
// laisse passer en invité. Un token invalide n'est pas une erreur ici :
// le checkout invité reste possible, l'e-mail sera collecté par la page
// de paiement.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		claims, err := parseBearer(authHeader)
		if err != nil {
			log.Printf("⚠️ Token ignoré (checkout invité): %v", err)
			c.Next()
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Set("email", claims["email"])
		c.Set("name", claims["name"])
		c.Next()
	}
}
