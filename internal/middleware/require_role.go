package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
)

// HasRole interroge user_roles directement. Jamais de cache : la décision
// d'autorisation est re-dérivée à chaque requête, un rôle révoqué cesse
// d'agir immédiatement. La requête est construite pour cet appel : rien
// de mutable n'est partagé entre deux vérifications concurrentes.
func HasRole(userID, role string) (bool, error) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		return false, err
	}

	var found string
	if err := database.QueryHasRole(usersSession, userID, role).Scan(&found); err != nil {
		// Pas de ligne = pas de rôle (fermé par défaut)
		return false, nil
	}
	return found == role, nil
}

// RequireRole vérifie que l'utilisateur authentifié détient un rôle.
// Pas de session ⇒ pas de rôle.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
			c.Abort()
			return
		}

		ok, err := HasRole(userID, role)
		if err != nil {
			log.Printf("❌ Erreur vérification rôle %s: %v", role, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			c.Abort()
			return
		}

		if !ok {
			log.Printf("🚫 Rôle %s refusé pour utilisateur %s", role, userID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé", "required_role": role})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireSeller vérifie que l'utilisateur a le rôle "seller"
func RequireSeller() gin.HandlerFunc {
	return RequireRole(models.RoleSeller)
}
