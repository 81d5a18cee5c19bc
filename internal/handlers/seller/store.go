package seller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
	"corecms_back_end/internal/services"
	"corecms_back_end/internal/utils"
)

// loadOwnStore retrouve la boutique du vendeur authentifié.
func loadOwnStore(c *gin.Context) (*gocql.Session, *models.Store, bool) {
	userID := c.GetString("user_id")

	storesSession, err := database.GetStoresSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return nil, nil, false
	}

	var storeID gocql.UUID
	if err := storesSession.Query(`
		SELECT store_id FROM stores_by_owner WHERE owner_id = ?`, userID).Scan(&storeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune boutique pour ce compte"})
		return nil, nil, false
	}

	var store models.Store
	store.ID = storeID
	err = storesSession.Query(`
		SELECT owner_id, name, slug, server_ip, discord_url, logo_url, status, theme, api_key_hash, is_featured, created_at, updated_at
		FROM stores WHERE store_id = ?`, storeID,
	).Scan(&store.OwnerID, &store.Name, &store.Slug, &store.ServerIP, &store.DiscordURL,
		&store.LogoURL, &store.Status, &store.Theme, &store.APIKeyHash, &store.IsFeatured,
		&store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		log.Printf("❌ Boutique %s introuvable: %v", storeID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return nil, nil, false
	}

	return storesSession, &store, true
}

// GetMyStore retourne la boutique du vendeur connecté
func GetMyStore(c *gin.Context) {
	_, store, ok := loadOwnStore(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": store})
}

// UploadStoreLogo remplace le logo de la boutique (multipart, champ "logo")
func UploadStoreLogo(c *gin.Context) {
	storesSession, store, ok := loadOwnStore(c)
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier logo manquant"})
		return
	}

	url, err := services.UploadStoreLogo(store.Slug, file)
	if err != nil {
		log.Printf("❌ Upload logo échoué pour %s: %v", store.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload du logo échoué"})
		return
	}

	if err := storesSession.Query(`
		UPDATE stores SET logo_url = ?, updated_at = ? WHERE store_id = ?`,
		url, time.Now(), store.ID).Exec(); err != nil {
		log.Printf("❌ Mise à jour logo échouée pour %s: %v", store.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// Invalider le cache public et ré-indexer
	database.Redis.Del(context.Background(), "store:"+store.Slug)
	store.LogoURL = url
	services.IndexStore(*store)

	log.Printf("🖼️ Logo mis à jour pour %s", store.Slug)
	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// RotateAPIKey génère une nouvelle clé d'API boutique. Le clair n'est
// retourné qu'une fois ; seule l'empreinte est persistée. L'ancienne clé
// cesse de fonctionner immédiatement.
func RotateAPIKey(c *gin.Context) {
	storesSession, store, ok := loadOwnStore(c)
	if !ok {
		return
	}

	plaintext, hash, err := utils.GenerateAPIKey()
	if err != nil {
		log.Printf("❌ Génération clé API échouée pour %s: %v", store.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := storesSession.Query(`
		UPDATE stores SET api_key_hash = ?, updated_at = ? WHERE store_id = ?`,
		hash, time.Now(), store.ID).Exec(); err != nil {
		log.Printf("❌ Rotation clé API échouée pour %s: %v", store.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	log.Printf("🔑 Clé API régénérée pour %s", store.Slug)
	c.JSON(http.StatusOK, gin.H{
		"api_key": plaintext,
		"message": "Conservez cette clé : elle ne sera plus jamais affichée",
	})
}

// VerifyStoreKey authentifie le plugin du serveur de jeu : slug + clé API.
func VerifyStoreKey(c *gin.Context) {
	var req struct {
		Slug   string `json:"slug" binding:"required"`
		APIKey string `json:"api_key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	storesSession, err := database.GetStoresSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var storeID gocql.UUID
	if err := storesSession.Query(`
		SELECT store_id FROM stores_by_slug WHERE slug = ?`, req.Slug).Scan(&storeID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	var apiKeyHash string
	if err := storesSession.Query(`
		SELECT api_key_hash FROM stores WHERE store_id = ?`, storeID).Scan(&apiKeyHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	if apiKeyHash == "" || !utils.VerifyAPIKey(req.APIKey, apiKeyHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "store_id": storeID.String()})
}
