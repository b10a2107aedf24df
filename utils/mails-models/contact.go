package mailsmodels

import (
	"fmt"
	"os"

	"rdistro-backend/utils"
)

type ContactEmailData struct {
	Name    string
	Email   string
	Message string
}

// ContactNotification relaie une demande du formulaire de contact vers l'admin
func ContactNotification(data ContactEmailData) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = SupportSender
	}

	subject := fmt.Sprintf("New Contact Form Submission from %s", data.Name)
	body := fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 16px; padding: 32px; border: 1px solid #e2e8f0;">
		<h2 style="text-align: center; color: #000;">RDistro</h2>
		<p style="text-align: center;"><span style="background: #10b981; color: white; padding: 6px 16px; border-radius: 20px;">New Contact Form</span></p>
		<div style="background: #f8fafc; border-radius: 12px; padding: 20px; margin: 16px 0;">
			<p><strong>From:</strong> %s</p>
			<p><strong>Email:</strong> <a href="mailto:%s" style="color: #7c3aed;">%s</a></p>
		</div>
		<div style="background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 16px; white-space: pre-wrap; line-height: 1.6;">%s</div>
	</div>
`, data.Name, data.Email, data.Email, data.Message)

	utils.SendMail(SupportSender, "RDistro Contact", adminEmail, subject, body, data.Email)
}

// ManualEmail envoie un message libre rédigé depuis le dashboard admin
func ManualEmail(from string, to string, subject string, message string) {
	fromName := SenderNames[from]
	if fromName == "" {
		fromName = "RDistro"
	}

	body := fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="white-space: pre-wrap; line-height: 1.6; color: #333;">%s</div>
		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;" />
		<div style="font-size: 12px; color: #666;">
			<p style="margin: 0;">Best regards,</p>
			<p style="margin: 0; font-weight: 600;">%s</p>
		</div>
	</div>
`, message, fromName)

	utils.SendMail(from, fromName, to, subject, body, "")
}
