package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"corecms_back_end/internal/database"
)

const (
	// Limites par endpoint
	CheckoutMaxRequests    = 10 // Par minute et par IP
	ApplicationMaxAttempts = 3  // Candidatures par heure et par utilisateur
	APIMaxRequests         = 100
	SearchMaxRequests      = 30

	CheckoutCooldown    = 1 * time.Minute
	ApplicationCooldown = 1 * time.Hour
	APICooldown         = 1 * time.Minute
)

// CheckoutRateLimit limite les créations de session de paiement par IP
// (anti-abus : chaque appel crée une session Stripe indépendante)
func CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "checkout_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= CheckoutMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de tentatives de paiement. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, CheckoutCooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}

// ApplicationRateLimit limite les soumissions de candidature vendeur
func ApplicationRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "seller_apply:" + userID

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= ApplicationMaxAttempts {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de candidatures. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// N'incrémenter que les soumissions acceptées
		if c.Writer.Status() == http.StatusCreated {
			pipe := database.Redis.Pipeline()
			pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, ApplicationCooldown)
			pipe.Exec(ctx)
		}
	}
}

// APIRateLimit limite le nombre de requêtes par IP (général)
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "api_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", APIMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", APIMaxRequests-requests-1))

		c.Next()
	}
}

// SearchRateLimit limite les recherches de boutiques (anti-spam)
func SearchRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ctx := context.Background()
		key := "search_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= SearchMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de recherches. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 1*time.Minute)
		pipe.Exec(ctx)

		c.Next()
	}
}
