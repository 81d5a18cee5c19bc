package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corecms_back_end/internal/config"
	"corecms_back_end/internal/database"
	"corecms_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	// Secrets sans lesquels le serveur ne peut pas fonctionner : clé
	// Stripe (checkout), clé JWT (une clé vide rendrait tout token
	// forgeable), identifiants SMTP (notifications de candidature)
	config.MustHave("STRIPE_SECRET_KEY", "JWT_SECRET", "SMTP_USERNAME", "SMTP_PASSWORD")
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	log.Println("✅ Stripe initialisé")

	database.ConnectDatabases()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"}
	r.Use(cors.New(corsConfig))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Println("🚀 Serveur CoreCMS lancé sur le port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Erreur serveur HTTP: %v", err)
		}
	}()

	// Arrêt propre : on laisse les requêtes en vol se terminer puis on
	// ferme les sessions ScyllaDB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Arrêt du serveur...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Arrêt HTTP forcé: %v", err)
	}

	database.CloseScylla()
	log.Println("👋 Serveur arrêté")
}
