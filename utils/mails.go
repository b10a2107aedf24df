package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendMail envoie un email HTML via SMTP. L'envoi est best-effort :
// une erreur est loguée mais jamais propagée à l'opération appelante.
func SendMail(from string, fromName string, to string, subject string, bodyHTML string, replyTo string) {
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	if username == "" || password == "" {
		LogInfo("SMTP non configuré, email ignoré: " + subject)
		return
	}

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", fromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	if replyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", replyTo)
	}
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"

	message := []byte(headers + bodyHTML)

	auth := smtp.PlainAuth("", username, password, smtpHost)
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
	if err != nil {
		LogErrorWithEmail(to, err, "Erreur lors de l'envoi de l'email")
		return
	}

	LogSuccessWithEmail(to, "Email envoyé: "+subject)
}
