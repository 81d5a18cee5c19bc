package utils

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corecms_back_end/internal/models"
)

func testApplication() models.SellerApplication {
	return models.SellerApplication{
		ID:             gocql.TimeUUID(),
		UserID:         "user-123",
		ApplicantEmail: "joueur@example.com",
		ApplicantName:  "Joueur",
		ServerName:     "Dream Server",
		ServerIP:       "play.dream.example.com",
		DiscordURL:     "https://discord.gg/dream",
		Reason:         "Je gère un serveur depuis trois ans",
		Status:         models.ApplicationStatusPending,
	}
}

func TestBuildSellerApplicationEmail_ContainsFieldsAndLinks(t *testing.T) {
	app := testApplication()

	html, err := BuildSellerApplicationEmail(app,
		"https://api.example.com/api/seller/decision?id=abc&action=approve",
		"https://api.example.com/api/seller/decision?id=abc&action=reject")
	require.NoError(t, err)

	assert.Contains(t, html, "Dream Server")
	assert.Contains(t, html, "play.dream.example.com")
	assert.Contains(t, html, "joueur@example.com")
	assert.Contains(t, html, "https://discord.gg/dream")
	assert.Contains(t, html, "action=approve")
	assert.Contains(t, html, "action=reject")
}

func TestBuildSellerApplicationEmail_EscapesApplicantInput(t *testing.T) {
	// Rien de ce que saisit le candidat ne doit être interprété comme du
	// balisage dans le mail de l'opérateur
	app := testApplication()
	app.ServerName = `<script>alert("xss")</script>`
	app.Reason = `<img src=x onerror="steal()">`

	html, err := BuildSellerApplicationEmail(app, "https://a/approve", "https://a/reject")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img src=x")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestBuildSellerApplicationEmail_DiscordOptional(t *testing.T) {
	app := testApplication()
	app.DiscordURL = ""

	html, err := BuildSellerApplicationEmail(app, "https://a/approve", "https://a/reject")
	require.NoError(t, err)

	assert.NotContains(t, html, "Discord")
}

func TestDecisionURLs(t *testing.T) {
	t.Setenv("BASE_URL", "https://api.corecms.app")

	approveURL, rejectURL := DecisionURLs("abc-123")

	assert.Equal(t, "https://api.corecms.app/api/seller/decision?id=abc-123&action=approve", approveURL)
	assert.Equal(t, "https://api.corecms.app/api/seller/decision?id=abc-123&action=reject", rejectURL)
}

func TestDecisionURLs_DefaultBase(t *testing.T) {
	t.Setenv("BASE_URL", "")

	approveURL, _ := DecisionURLs("abc-123")

	assert.Equal(t, "http://localhost:8080/api/seller/decision?id=abc-123&action=approve", approveURL)
}
