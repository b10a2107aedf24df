package mailsmodels

import (
	"fmt"
	"os"
	"time"

	"rdistro-backend/utils"
)

type RegistrationEmailData struct {
	Plan            string
	Name            string
	Email           string
	Phone           string
	Country         string
	EntityName      string
	SocialLinks     string
	SpotifyLink     string
	PaymentIntentID string
	Amount          float64
	FreeTrial       bool
	TrialEndDate    *time.Time
}

func planLabel(plan string) string {
	if plan == "artist" {
		return "Artist"
	}
	return "Label"
}

// RegistrationConfirmation envoie l'email de bienvenue au client après inscription
func RegistrationConfirmation(data RegistrationEmailData) {
	subject := "Welcome to RDistro - Registration Confirmed"
	intro := fmt.Sprintf("Your %s Plan registration is confirmed. Payment of $%.2f was received.", planLabel(data.Plan), data.Amount)
	trialNote := ""
	if data.FreeTrial {
		intro = fmt.Sprintf("Your %s Plan free trial has started. No charge today.", planLabel(data.Plan))
		if data.TrialEndDate != nil {
			trialNote = fmt.Sprintf(`
				<p style="background-color: #fef3c7; border: 1px solid #fcd34d; border-radius: 8px; padding: 12px; color: #92400e;">
					Your card will be charged $%.2f on %s unless you cancel before then.
				</p>`, data.Amount, data.TrialEndDate.Format("January 2, 2006"))
		}
		subject = "Welcome to RDistro - Your Free Trial Has Started"
	}

	body := fmt.Sprintf(`
	<div style="background-color: #1f2937; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px; border-radius: 12px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center; color: #7c3aed;">RDistro</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding: 0 30px 30px;">
						<h2>Welcome, %s!</h2>
						<p>%s</p>
						%s
						<p>Our team will create your distribution account shortly. You will receive your login details by email.</p>
						<p>Questions? Contact us at <a href="mailto:support@rdistro.net" style="color: #7c3aed;">support@rdistro.net</a></p>
						<p><strong>The RDistro Team</strong></p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.Name, intro, trialNote)

	utils.SendMail(RegistrationSender, "RDistro", data.Email, subject, body, SupportSender)
}

// NewRegistrationAdmin notifie l'admin d'une nouvelle inscription à traiter
func NewRegistrationAdmin(data RegistrationEmailData) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		utils.LogInfo("ADMIN_EMAIL non configuré, notification admin ignorée")
		return
	}

	badge := fmt.Sprintf("New %s Registration ($%.0f)", planLabel(data.Plan), data.Amount)
	subject := fmt.Sprintf("New %s: %s ($%.0f)", planLabel(data.Plan), data.EntityName, data.Amount)
	trialNote := ""
	if data.FreeTrial {
		badge = fmt.Sprintf("Free Trial - New %s Registration", planLabel(data.Plan))
		subject = fmt.Sprintf("Free Trial - New %s: %s", planLabel(data.Plan), data.EntityName)
		if data.TrialEndDate != nil {
			trialNote = fmt.Sprintf(`
				<p style="background-color: #dcfce7; border: 1px solid #bbf7d0; padding: 12px; border-radius: 8px; color: #166534;">
					<strong>Free Trial:</strong> card saved, will be charged $%.2f on %s
				</p>`, data.Amount, data.TrialEndDate.Format("January 2, 2006"))
		}
	}

	links := ""
	if data.SocialLinks != "" {
		links += fmt.Sprintf(`<p style="font-size: 13px;">Social: %s</p>`, data.SocialLinks)
	}
	if data.SpotifyLink != "" {
		links += fmt.Sprintf(`<p style="font-size: 13px;">Spotify: <a href="%s" style="color: #7c3aed;">%s</a></p>`, data.SpotifyLink, data.SpotifyLink)
	}

	body := fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 24px;">
		<h2 style="color: #7c3aed; text-align: center;">RDistro</h2>
		<p style="text-align: center;"><span style="background: #7c3aed; color: white; padding: 6px 16px; border-radius: 20px;">%s</span></p>
		<div style="background: #f8fafc; border-radius: 12px; padding: 20px; margin: 16px 0;">
			<p><strong>Plan:</strong> %s</p>
			<p><strong>Amount:</strong> $%.2f</p>
			%s
			<p style="font-size: 11px; color: #64748b; word-break: break-all;"><strong>Payment ID:</strong> %s</p>
		</div>
		<div style="background: #f8fafc; border-radius: 12px; padding: 20px; margin: 16px 0;">
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Phone:</strong> %s</p>
			<p><strong>Country:</strong> %s</p>
			<p><strong>%s:</strong> %s</p>
			%s
		</div>
		<p style="text-align: center; color: #64748b;"><strong>Action Required:</strong> Create account for this customer</p>
	</div>
`, badge, planLabel(data.Plan), data.Amount, trialNote, data.PaymentIntentID,
		data.Name, data.Email, data.Phone, data.Country, planLabel(data.Plan), data.EntityName, links)

	utils.SendMail(RegistrationSender, "RDistro", adminEmail, subject, body, "")
}
