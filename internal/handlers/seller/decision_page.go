package seller

import (
	"bytes"
	"html/template"
)

// Variantes de la page de confirmation de décision
const (
	pageSuccess = "success"
	pageError   = "error"
	pageWarning = "warning"
)

// La page de décision est lue par un humain qui suit un lien e-mail,
// pas par du JavaScript : on rend du HTML, pas du JSON. html/template
// échappe le nom de serveur fourni par le candidat.
var decisionPageTmpl = template.Must(template.New("decision_page").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>CoreCMS - {{.Title}}</title>
	<style>
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body {
			font-family: 'Segoe UI', Tahoma, sans-serif;
			background: linear-gradient(135deg, #1a1a2e 0%, #16213e 50%, #0f3460 100%);
			min-height: 100vh;
			display: flex;
			align-items: center;
			justify-content: center;
			color: #fff;
			padding: 20px;
		}
		.container {
			background: rgba(255, 255, 255, 0.05);
			border-radius: 24px;
			padding: 50px;
			text-align: center;
			max-width: 500px;
			border: 1px solid rgba(255, 255, 255, 0.1);
		}
		.icon {
			width: 100px;
			height: 100px;
			background: {{.Color}};
			border-radius: 50%;
			display: flex;
			align-items: center;
			justify-content: center;
			font-size: 48px;
			margin: 0 auto 30px;
		}
		h1 { font-size: 28px; margin-bottom: 15px; }
		p { color: #94a3b8; font-size: 16px; line-height: 1.8; }
		.footer { margin-top: 40px; color: #64748b; font-size: 14px; }
	</style>
</head>
<body>
	<div class="container">
		<div class="icon">{{.Icon}}</div>
		<h1>{{.Title}}</h1>
		<p>{{.Message}}</p>
		<div class="footer">
			<p>CoreCMS — marketplace de boutiques Minecraft</p>
		</div>
	</div>
</body>
</html>`))

type decisionPageData struct {
	Title   string
	Message string
	Icon    string
	Color   template.CSS
}

// buildDecisionPage génère la page de confirmation (succès / erreur /
// déjà traité).
func buildDecisionPage(title, message, variant string) string {
	data := decisionPageData{Title: title, Message: message}

	switch variant {
	case pageSuccess:
		data.Icon, data.Color = "✅", "#22c55e"
	case pageWarning:
		data.Icon, data.Color = "⚠️", "#f59e0b"
	default:
		data.Icon, data.Color = "❌", "#ef4444"
	}

	var buf bytes.Buffer
	if err := decisionPageTmpl.Execute(&buf, data); err != nil {
		// Repli minimal : le template inline est constant, ce chemin ne
		// devrait jamais être atteint
		return "<html><body>" + template.HTMLEscapeString(title) + "</body></html>"
	}
	return buf.String()
}
