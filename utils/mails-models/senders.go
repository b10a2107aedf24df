package mailsmodels

import (
	"os"

	"rdistro-backend/utils"
)

const (
	RegistrationSender = "registration@rdistro.net"
	SupportSender      = "support@rdistro.net"
)

// SenderNames associe chaque adresse d'expéditeur autorisée à son nom d'affichage
var SenderNames = map[string]string{
	"fatama@rdistro.net":       "Fatama - RDistro",
	"rafsan@rdistro.net":       "Rafsan - RDistro",
	"support@rdistro.net":      "RDistro Support",
	"registration@rdistro.net": "RDistro Registration",
}

func IsValidSender(from string) bool {
	_, ok := SenderNames[from]
	return ok
}

// AdminNotification envoie un message court à l'adresse admin configurée
func AdminNotification(subject string, message string) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		utils.LogInfo("ADMIN_EMAIL non configuré, notification admin ignorée")
		return
	}

	body := `
	<div style="font-family: sans-serif; padding: 20px;">
		<h2 style="color: #7c3aed;">` + subject + `</h2>
		<p>` + message + `</p>
		<p style="color: #64748b; font-size: 12px; margin-top: 20px;">
			<a href="https://rdistro.net/admin" style="color: #7c3aed;">View Admin Dashboard</a>
		</p>
	</div>
`

	utils.SendMail(RegistrationSender, "RDistro", adminEmail, "[Admin] "+subject, body, "")
}
