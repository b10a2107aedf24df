package mailsmodels

import (
	"fmt"

	"rdistro-backend/utils"
)

// PaymentSucceeded confirme au client un paiement d'abonnement encaissé
func PaymentSucceeded(email string, amount float64) {
	subject := "Payment Successful - RDistro Subscription"
	body := fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 500px; margin: 0 auto; background: white; border-radius: 16px; padding: 32px; border: 1px solid #e2e8f0;">
		<h2 style="color: #7c3aed; text-align: center;">RDistro</h2>
		<h1 style="text-align: center; color: #0f172a;">Payment Successful!</h1>
		<p style="font-size: 32px; font-weight: bold; color: #10b981; text-align: center; margin: 24px 0;">$%.2f</p>
		<p style="color: #64748b; line-height: 1.6; text-align: center;">
			Your subscription payment was successful. Your RDistro account remains active for another year.
		</p>
		<p style="color: #64748b; text-align: center; margin-top: 16px;">Thank you for continuing with RDistro!</p>
		<p style="text-align: center; color: #94a3b8; font-size: 12px; margin-top: 24px;">© RDistro - Music Distribution</p>
	</div>
`, amount)

	utils.SendMail(RegistrationSender, "RDistro", email, subject, body, SupportSender)
}

// PaymentFailed prévient le client d'un échec de prélèvement
func PaymentFailed(email string) {
	subject := "Payment Failed - Action Required"
	body := `
	<div style="font-family: sans-serif; max-width: 500px; margin: 0 auto; background: white; border-radius: 16px; padding: 32px; border: 1px solid #e2e8f0;">
		<h2 style="color: #7c3aed; text-align: center;">RDistro</h2>
		<h1 style="text-align: center; color: #ef4444;">Payment Failed</h1>
		<p style="color: #64748b; line-height: 1.6;">
			We were unable to process your subscription payment. Please update your payment method to continue using RDistro.
		</p>
		<div style="background: #fef2f2; border: 1px solid #fecaca; padding: 16px; border-radius: 12px; margin: 20px 0; color: #991b1b;">
			<strong>Action Required:</strong> Your account access may be limited until payment is resolved.
		</div>
		<p style="color: #64748b;">
			Please contact us at <a href="mailto:support@rdistro.net" style="color: #7c3aed;">support@rdistro.net</a> if you need assistance.
		</p>
		<p style="text-align: center; color: #94a3b8; font-size: 12px; margin-top: 24px;">© RDistro - Music Distribution</p>
	</div>
`

	utils.SendMail(RegistrationSender, "RDistro", email, subject, body, SupportSender)
}
