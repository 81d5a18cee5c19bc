package routes

import (
	"corecms_back_end/internal/handlers/auth"
	pa "corecms_back_end/internal/handlers/payement"
	"corecms_back_end/internal/handlers/seller"
	"corecms_back_end/internal/handlers/store"
	"corecms_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Paiement
	api.POST("/checkout", middleware.CheckoutRateLimit(), middleware.OptionalAuth(), pa.CreateCheckoutSession)
	api.POST("/stripe/webhook", pa.StripeWebhook)

	// Candidatures vendeur
	api.POST("/seller/apply", middleware.AuthRequired(), middleware.ApplicationRateLimit(), seller.SubmitApplication)
	// Lien e-mail suivi par un humain : pas d'auth, l'id opaque + la
	// transition conditionnelle suffisent
	api.GET("/seller/decision", seller.HandleDecision)

	// Espace vendeur
	sellerGroup := api.Group("/seller", middleware.AuthRequired(), middleware.RequireSeller())
	sellerGroup.GET("/store", seller.GetMyStore)
	sellerGroup.POST("/store/logo", seller.UploadStoreLogo)
	sellerGroup.POST("/store/rotate-key", seller.RotateAPIKey)

	// Vitrines publiques
	api.GET("/stores/search", middleware.SearchRateLimit(), store.SearchStores)
	api.GET("/stores/:slug", middleware.APIRateLimit(), store.GetStoreBySlug)
	api.GET("/stores/:slug/qr", middleware.APIRateLimit(), store.GetStoreQR)

	// Plugin serveur de jeu
	api.POST("/store/verify-key", middleware.APIRateLimit(), seller.VerifyStoreKey)

	// Auth
	api.GET("/auth/roles", middleware.AuthRequired(), auth.GetMyRoles)
}
