package utils

import (
	"fmt"
	"strings"

	"corecms_back_end/internal/models"
)

// GenerateReceiptHTML génère le HTML du reçu envoyé à l'acheteur une fois
// le paiement confirmé par Stripe.
func GenerateReceiptHTML(order models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Paiement confirmé</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #22c55e;">✅ Paiement confirmé</h2>
		<p>Bonjour,</p>
		<p>Votre paiement a bien été reçu. Vos articles seront livrés sur le serveur d'ici quelques minutes.</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 8px; color: #777;">Référence</td>
				<td style="padding: 8px; font-family: monospace;">%s</td>
			</tr>
			<tr>
				<td style="padding: 8px; color: #777;">Montant</td>
				<td style="padding: 8px; font-weight: bold;">%.2f %s</td>
			</tr>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Merci pour votre achat,<br>
			<strong>L'équipe CoreCMS</strong>
		</p>
	</div>
</body>
</html>`, order.OrderID.String(), order.TotalAmount, strings.ToUpper(order.Currency))
}
