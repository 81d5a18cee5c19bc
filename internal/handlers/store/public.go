package store

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
	"corecms_back_end/internal/services"
	"corecms_back_end/internal/utils"
)

const storeCacheTTL = 5 * time.Minute

// lookupStoreID résout un slug en identifiant boutique (requête chaude,
// construite pour cet appel).
func lookupStoreID(storesSession *gocql.Session, slug string) (gocql.UUID, error) {
	var storeID gocql.UUID
	err := database.QueryStoreBySlug(storesSession, slug).Scan(&storeID)
	return storeID, err
}

// GetStoreBySlug retourne la vitrine publique d'une boutique.
// Les lectures passent par un cache Redis court ; les boutiques non
// approuvées sont invisibles (404, pas 403 : on ne révèle pas l'existence).
func GetStoreBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug requis"})
		return
	}

	ctx := context.Background()
	cacheKey := "store:" + slug

	// 1. Essayer le cache Redis
	if data, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var cached models.Store
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"store": cached})
			return
		}
	}

	// 2. Récupérer de ScyllaDB
	storesSession, err := database.GetStoresSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	storeID, err := lookupStoreID(storesSession, slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	var s models.Store
	s.ID = storeID
	err = storesSession.Query(`
		SELECT owner_id, name, slug, server_ip, discord_url, logo_url, status, theme, is_featured, created_at, updated_at
		FROM stores WHERE store_id = ?`, storeID,
	).Scan(&s.OwnerID, &s.Name, &s.Slug, &s.ServerIP, &s.DiscordURL, &s.LogoURL,
		&s.Status, &s.Theme, &s.IsFeatured, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		log.Printf("❌ Boutique %s introuvable: %v", storeID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	if s.Status != models.StoreStatusApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	// 3. Mettre en cache
	if data, err := json.Marshal(s); err == nil {
		database.Redis.Set(ctx, cacheKey, data, storeCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{"store": s})
}

// SearchStores recherche des boutiques pour la page découverte
func SearchStores(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := services.SearchStores(query)
	if err != nil {
		log.Printf("❌ Recherche boutiques échouée: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recherche indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": results,
		"total":  len(results),
	})
}

// GetStoreQR retourne un QR code PNG pointant vers la vitrine publique
func GetStoreQR(c *gin.Context) {
	slug := c.Param("slug")

	storesSession, err := database.GetStoresSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if _, err := lookupStoreID(storesSession, slug); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	front := os.Getenv("FRONTEND_URL")
	if front == "" {
		front = "https://corecms.app"
	}

	png, err := utils.GenerateStoreQR(front + "/store/" + slug)
	if err != nil {
		log.Printf("❌ Génération QR échouée pour %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Génération QR échouée"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
