package utils

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GetFrontendReceiptBaseURL retourne l'URL de la page reçu du frontend.
func GetFrontendReceiptBaseURL() string {
	base := os.Getenv("FRONTEND_RECEIPT_URL")
	if base == "" {
		base = "http://localhost:3000/receipt"
	}
	return base
}

// RenderReceiptPDF charge la page reçu du frontend dans un Chrome headless
// et l'imprime en PDF. Utilisé en pièce jointe du mail de confirmation :
// l'échec n'est jamais bloquant pour le webhook appelant.
func RenderReceiptPDF(frontendURL, sessionID string) ([]byte, error) {
	q := url.Values{}
	q.Set("session_id", sessionID)
	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer le webhook
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
