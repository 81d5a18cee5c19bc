package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"corecms_back_end/internal/database"
)

// GetMyRoles retourne les rôles courants de l'appelant.
// C'est le point de revalidation du client : appelé à chaque changement
// d'état d'authentification (connexion, déconnexion, refresh), jamais mis
// en cache côté serveur — un rôle révoqué disparaît à la lecture suivante.
func GetMyRoles(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := database.QueryUserRoles(usersSession, userID).Iter()

	roles := []string{}
	var role string
	for iter.Scan(&role) {
		roles = append(roles, role)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture rôles pour %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles})
}
