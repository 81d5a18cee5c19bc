package seller

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"
	"corecms_back_end/internal/services"
	"corecms_back_end/internal/utils"
)

// Points d'effet du flux de décision. Indirections de package : les tests
// les remplacent pour exercer les branches sans session ScyllaDB.
var (
	loadApplication        = loadApplicationByID
	applyApplicationStatus = applyApplicationStatusCAS
	releaseApplicationLock = releasePendingLock
	finalizeApproval       = approveApplication
)

// HandleDecision traite le clic sur un lien approve/reject de l'e-mail
// de notification. Le lien ne porte qu'un id opaque et une action : la
// vérité est relue ici, et la transition est une écriture conditionnelle
// unique ("passer à X seulement si encore pending"). Rejouer le lien, ou
// cliquer deux fois en même temps, ne provisionne jamais deux boutiques.
func HandleDecision(c *gin.Context) {
	rawID := c.Query("id")
	action := c.Query("action")

	if action != models.DecisionApprove && action != models.DecisionReject {
		renderDecisionPage(c, http.StatusBadRequest, "❌ Paramètres invalides",
			"Le lien de décision est incomplet ou corrompu.", pageError)
		return
	}

	appID, err := uuid.Parse(rawID)
	if err != nil {
		renderDecisionPage(c, http.StatusBadRequest, "❌ Paramètres invalides",
			"L'identifiant de candidature est invalide.", pageError)
		return
	}

	// ✅ 1. Charger la candidature
	app, err := loadApplication(gocql.UUID(appID))
	if err == gocql.ErrNotFound {
		log.Printf("❌ Candidature %s introuvable", rawID)
		renderDecisionPage(c, http.StatusNotFound, "❌ Candidature introuvable",
			"Cette candidature n'existe pas ou a été supprimée.", pageError)
		return
	}
	if err != nil {
		log.Printf("❌ Lecture candidature %s échouée: %v", rawID, err)
		renderDecisionPage(c, http.StatusInternalServerError, "❌ Une erreur est survenue",
			"Lecture de la candidature impossible. Réessayez depuis l'e-mail.", pageError)
		return
	}

	newStatus := models.ApplicationStatusRejected
	if action == models.DecisionApprove {
		newStatus = models.ApplicationStatusApproved
	}

	// ✅ 2. Transition atomique : ne s'applique que si toujours pending.
	// C'est LE garde-fou contre le double clic et le rejeu du lien.
	applied, prevStatus, err := applyApplicationStatus(app.ID, newStatus)
	if err != nil {
		log.Printf("❌ Erreur transition candidature %s: %v", app.ID, err)
		renderDecisionPage(c, http.StatusInternalServerError, "❌ Une erreur est survenue",
			"La mise à jour a échoué. Réessayez depuis l'e-mail.", pageError)
		return
	}

	if !applied {
		// Déjà traitée : aucun effet de bord supplémentaire
		statusLabel := "rejetée ❌"
		if prevStatus == models.ApplicationStatusApproved {
			statusLabel = "acceptée ✅"
		}
		renderDecisionPage(c, http.StatusOK, "⚠️ Candidature déjà traitée",
			fmt.Sprintf("Cette candidature a déjà été %s.", statusLabel), pageWarning)
		return
	}

	// La transition est commise : c'est le fait durable. Les étapes qui
	// suivent sont idempotentes et leurs échecs sont des trous
	// opérationnels loggés, pas des annulations.
	releaseApplicationLock(app.UserID)

	if action == models.DecisionReject {
		log.Printf("📋 Candidature %s rejetée", app.ID)
		renderDecisionPage(c, http.StatusOK, "❌ Candidature rejetée",
			fmt.Sprintf("La candidature « %s » a été rejetée.", app.ServerName), pageSuccess)
		return
	}

	// ✅ 3. Approbation : rôle vendeur + provisioning boutique (une seule
	// fois — seul le gagnant de la transition passe ici)
	finalizeApproval(app)

	log.Printf("📋 Candidature %s approuvée", app.ID)
	renderDecisionPage(c, http.StatusOK, "✅ Candidature acceptée !",
		fmt.Sprintf("La candidature « %s » a été acceptée : rôle vendeur accordé et boutique créée.", app.ServerName),
		pageSuccess)
}

func renderDecisionPage(c *gin.Context, status int, title, message, variant string) {
	c.Data(status, "text/html; charset=utf-8", []byte(buildDecisionPage(title, message, variant)))
}

func loadApplicationByID(id gocql.UUID) (models.SellerApplication, error) {
	var app models.SellerApplication
	app.ID = id

	usersSession, err := database.GetUsersSession()
	if err != nil {
		return app, err
	}

	err = usersSession.Query(`
		SELECT user_id, applicant_email, applicant_name, server_name, server_ip, discord_url, reason, status
		FROM seller_applications WHERE id = ?`, id,
	).Scan(&app.UserID, &app.ApplicantEmail, &app.ApplicantName, &app.ServerName,
		&app.ServerIP, &app.DiscordURL, &app.Reason, &app.Status)
	return app, err
}

// applyApplicationStatusCAS applique la transition conditionnelle.
// applied=false : la candidature n'était plus pending, prevStatus porte
// son statut au moment de l'écriture.
func applyApplicationStatusCAS(id gocql.UUID, newStatus string) (applied bool, prevStatus string, err error) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		return false, "", err
	}

	applied, err = usersSession.Query(`
		UPDATE seller_applications SET status = ?, updated_at = ? WHERE id = ? IF status = ?`,
		newStatus, time.Now(), id, models.ApplicationStatusPending,
	).ScanCAS(&prevStatus)
	if err != nil {
		return false, "", err
	}
	return applied, prevStatus, nil
}

// releasePendingLock libère le verrou "une candidature pending" pour
// autoriser une future re-candidature.
func releasePendingLock(userID string) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Verrou candidature non relâché pour %s: %v", userID, err)
		return
	}
	if err := usersSession.Query(`DELETE FROM seller_pending_by_user WHERE user_id = ?`, userID).Exec(); err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Verrou candidature non relâché pour %s: %v", userID, err)
	}
}

// approveApplication exécute les effets d'une approbation gagnée : rôle
// vendeur puis boutique. Chaque étape est idempotente, un échec est loggé
// et se rejoue sans risque.
func approveApplication(app models.SellerApplication) {
	grantSellerRole(app.UserID)
	provisionStore(app)
}

// grantSellerRole accorde le rôle vendeur. La clé primaire (user_id, role)
// rend l'insertion idempotente : re-jouer l'attribution ne crée pas de
// doublon.
func grantSellerRole(userID string) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Rôle vendeur non accordé à %s: %v", userID, err)
		return
	}

	if err := usersSession.Query(`
		INSERT INTO user_roles (user_id, role, created_at) VALUES (?, ?, ?)`,
		userID, models.RoleSeller, time.Now(),
	).Exec(); err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Rôle vendeur non accordé à %s: %v", userID, err)
		return
	}
	log.Printf("✅ Rôle vendeur accordé à %s", userID)
}

// provisionStore crée la boutique du vendeur. Le slug est dérivé du nom
// de serveur plus un suffixe temporel : unique sans lecture préalable.
func provisionStore(app models.SellerApplication) {
	storesSession, err := database.GetStoresSession()
	if err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Boutique non créée pour la candidature %s: %v", app.ID, err)
		return
	}

	_, apiKeyHash, err := utils.GenerateAPIKey()
	if err != nil {
		log.Printf("⚠️ Génération clé API échouée pour %s: %v", app.ID, err)
		apiKeyHash = "" // le vendeur obtiendra une clé via la rotation
	}

	now := time.Now()
	store := models.Store{
		ID:         gocql.TimeUUID(),
		OwnerID:    app.UserID,
		Name:       app.ServerName,
		Slug:       utils.GenerateSlug(app.ServerName),
		ServerIP:   app.ServerIP,
		DiscordURL: app.DiscordURL,
		Status:     models.StoreStatusApproved,
		Theme:      models.DefaultStoreTheme,
		APIKeyHash: apiKeyHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := storesSession.Query(`
		INSERT INTO stores (store_id, owner_id, name, slug, server_ip, discord_url, logo_url, status, theme, api_key_hash, is_featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		store.ID, store.OwnerID, store.Name, store.Slug, store.ServerIP, store.DiscordURL,
		"", store.Status, store.Theme, store.APIKeyHash, false, store.CreatedAt, store.UpdatedAt,
	).Exec(); err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Boutique non créée pour la candidature %s: %v", app.ID, err)
		return
	}

	if err := storesSession.Query(`
		INSERT INTO stores_by_slug (slug, store_id) VALUES (?, ?)`,
		store.Slug, store.ID).Exec(); err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Index stores_by_slug non écrit pour %s: %v", store.Slug, err)
	}

	if err := storesSession.Query(`
		INSERT INTO stores_by_owner (owner_id, store_id) VALUES (?, ?)`,
		store.OwnerID, store.ID).Exec(); err != nil {
		log.Printf("⚠️ [APPROVAL-GAP] Index stores_by_owner non écrit pour %s: %v", store.OwnerID, err)
	}

	// Indexation découverte : best-effort
	services.IndexStore(store)

	log.Printf("🏪 Boutique créée: %s (slug: %s)", store.Name, store.Slug)
}
