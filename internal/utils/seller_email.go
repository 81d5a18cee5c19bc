package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"

	"corecms_back_end/internal/models"
)

// Template de notification admin pour une nouvelle candidature vendeur.
// html/template échappe tous les champs fournis par le candidat : rien de ce
// qu'il saisit ne peut être interprété comme du balisage.
var sellerApplicationTmpl = template.Must(template.New("seller_application").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">🎮 Nouvelle candidature vendeur</h2>
		<p>Un utilisateur souhaite ouvrir une boutique sur CoreCMS.</p>

		<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 8px; color: #777;">Candidat</td>
				<td style="padding: 8px; font-weight: bold;">{{.App.ApplicantName}}</td>
			</tr>
			<tr>
				<td style="padding: 8px; color: #777;">E-mail</td>
				<td style="padding: 8px; font-weight: bold;">{{.App.ApplicantEmail}}</td>
			</tr>
			<tr>
				<td style="padding: 8px; color: #777;">Nom du serveur</td>
				<td style="padding: 8px; font-weight: bold;">{{.App.ServerName}}</td>
			</tr>
			<tr>
				<td style="padding: 8px; color: #777;">Adresse du serveur</td>
				<td style="padding: 8px; font-family: monospace;">{{.App.ServerIP}}</td>
			</tr>
			{{if .App.DiscordURL}}
			<tr>
				<td style="padding: 8px; color: #777;">Discord</td>
				<td style="padding: 8px;">{{.App.DiscordURL}}</td>
			</tr>
			{{end}}
		</table>

		<h3 style="color: #333;">Motivation</h3>
		<p style="background-color: #f0f0f0; padding: 15px; border-radius: 8px; line-height: 1.6;">{{.App.Reason}}</p>

		<div style="text-align: center; margin-top: 30px;">
			<a href="{{.ApproveURL}}" style="display: inline-block; padding: 14px 36px; margin: 0 8px; border-radius: 8px; background-color: #22c55e; color: #fff; text-decoration: none; font-weight: bold;">✅ Accepter</a>
			<a href="{{.RejectURL}}" style="display: inline-block; padding: 14px 36px; margin: 0 8px; border-radius: 8px; background-color: #ef4444; color: #fff; text-decoration: none; font-weight: bold;">❌ Refuser</a>
		</div>

		<p style="margin-top: 30px; color: #999; font-size: 12px; text-align: center;">
			CoreCMS — marketplace de boutiques Minecraft
		</p>
	</div>
</body>
</html>`))

type sellerApplicationEmailData struct {
	App        models.SellerApplication
	ApproveURL string
	RejectURL  string
}

// BuildSellerApplicationEmail génère le HTML de la notification admin.
func BuildSellerApplicationEmail(app models.SellerApplication, approveURL, rejectURL string) (string, error) {
	var buf bytes.Buffer
	err := sellerApplicationTmpl.Execute(&buf, sellerApplicationEmailData{
		App:        app,
		ApproveURL: approveURL,
		RejectURL:  rejectURL,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecisionURLs construit les deux liens de décision. Le lien ne transporte
// qu'un id opaque et une action : pas de secret, pas d'état mutable. Le
// handler revérifie le statut courant avant de muter, rejouer un lien est
// donc sans danger.
func DecisionURLs(applicationID string) (approveURL, rejectURL string) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	approveURL = fmt.Sprintf("%s/api/seller/decision?id=%s&action=approve", baseURL, applicationID)
	rejectURL = fmt.Sprintf("%s/api/seller/decision?id=%s&action=reject", baseURL, applicationID)
	return approveURL, rejectURL
}

// SendSellerApplicationEmail notifie l'opérateur d'une nouvelle candidature.
func SendSellerApplicationEmail(app models.SellerApplication) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL non configuré")
	}

	approveURL, rejectURL := DecisionURLs(app.ID.String())

	html, err := BuildSellerApplicationEmail(app, approveURL, rejectURL)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("🎮 Nouvelle candidature vendeur : %s", app.ServerName)
	if err := SendEmail(adminEmail, subject, html, nil, ""); err != nil {
		return err
	}

	log.Printf("📧 Notification candidature envoyée à %s (application %s)", adminEmail, app.ID)
	return nil
}
