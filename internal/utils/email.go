package utils

import (
	"bytes"
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

// SendEmail envoie un e-mail transactionnel en HTML, avec pièce jointe PDF
// optionnelle. L'envoi est de type fire-and-forget : l'appelant décide si
// un échec est bloquant.
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte, attachmentName string) error {
	msg := mail.NewMsg()

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@corecms.app"
	}

	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader(attachmentName, bytes.NewReader(pdfAttachment))
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "ssl0.ovh.net"
	}

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}
