package seller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
	"corecms_back_end/internal/utils"
)

// SubmitApplication enregistre une candidature vendeur.
// Garde : au plus une candidature "pending" par utilisateur, verrouillée
// par une insertion conditionnelle (IF NOT EXISTS) — pas de lecture-puis-
// écriture qui laisserait passer deux soumissions simultanées.
func SubmitApplication(c *gin.Context) {
	var req struct {
		ServerName string `json:"server_name" binding:"required"`
		ServerIP   string `json:"server_ip" binding:"required"`
		DiscordURL string `json:"discord_url"`
		Reason     string `json:"reason" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	name := c.GetString("name")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	app := models.SellerApplication{
		ID:             gocql.TimeUUID(),
		UserID:         userID,
		ApplicantEmail: email,
		ApplicantName:  name,
		ServerName:     req.ServerName,
		ServerIP:       req.ServerIP,
		DiscordURL:     req.DiscordURL,
		Reason:         req.Reason,
		Status:         models.ApplicationStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	// ✅ 1. Verrou "une seule candidature pending" (LWT)
	if err := claimPendingSlot(usersSession, userID, app.ID); err != nil {
		var conflict *models.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
			return
		}
		log.Printf("❌ Erreur verrou candidature: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// ✅ 2. Insérer la candidature
	if err := usersSession.Query(`
		INSERT INTO seller_applications (id, user_id, applicant_email, applicant_name, server_name, server_ip, discord_url, reason, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, app.UserID, app.ApplicantEmail, app.ApplicantName, app.ServerName,
		app.ServerIP, app.DiscordURL, app.Reason, app.Status, app.CreatedAt, app.UpdatedAt,
	).Exec(); err != nil {
		log.Printf("❌ Erreur insertion candidature: %v", err)
		// Relâcher le verrou pour ne pas bloquer une nouvelle soumission
		if delErr := usersSession.Query(`DELETE FROM seller_pending_by_user WHERE user_id = ?`, userID).Exec(); delErr != nil {
			log.Printf("⚠️ [PERSISTENCE] Verrou candidature non relâché pour %s: %v", userID, delErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la soumission"})
		return
	}

	// ✅ 3. Notifier l'opérateur. La candidature est déjà durable : un échec
	// d'envoi est loggé, la soumission reste acquise.
	if err := utils.SendSellerApplicationEmail(app); err != nil {
		log.Printf("⚠️ [UPSTREAM] Notification candidature %s non envoyée: %v", app.ID, err)
	}

	log.Printf("📝 Candidature vendeur soumise: %s (%s)", app.ID, app.ServerName)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Candidature soumise avec succès",
		"application": app,
	})
}

// claimPendingSlot réserve l'unique emplacement "candidature en attente"
// de l'utilisateur par insertion conditionnelle. Deux soumissions
// simultanées : une seule gagne, l'autre reçoit un ConflictError.
func claimPendingSlot(usersSession *gocql.Session, userID string, appID gocql.UUID) error {
	applied, err := usersSession.Query(`
		INSERT INTO seller_pending_by_user (user_id, application_id) VALUES (?, ?) IF NOT EXISTS`,
		userID, appID,
	).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return &models.ConflictError{Message: "Vous avez déjà une candidature en attente"}
	}
	return nil
}
