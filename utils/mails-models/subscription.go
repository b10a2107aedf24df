package mailsmodels

import (
	"fmt"

	"rdistro-backend/utils"
)

// SubscriptionCancelled prévient le client que son abonnement est résilié
func SubscriptionCancelled(email string, name string) {
	if name == "" {
		name = "Customer"
	}
	subject := "Your RDistro Subscription Has Been Cancelled"
	body := fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto; background: white; border-radius: 16px; padding: 32px; border: 1px solid #e5e7eb;">
		<h2 style="color: #7c3aed; text-align: center;">RDistro</h2>
		<h1 style="text-align: center; color: #1f2937;">Subscription Cancelled</h1>
		<p style="color: #374151; line-height: 1.7;">Hi %s,</p>
		<p style="color: #374151; line-height: 1.7;">Your RDistro subscription has been cancelled. We're sorry to see you go.</p>
		<div style="background-color: #fef3c7; border: 1px solid #fcd34d; border-radius: 12px; padding: 20px; margin-bottom: 24px;">
			<p style="margin: 0 0 8px; font-weight: 700; color: #92400e;">What This Means</p>
			<p style="margin: 0; color: #78350f; line-height: 1.6;">
				Your releases will remain on streaming platforms until the end of your current billing period. After that, they may be taken down.
			</p>
		</div>
		<div style="background-color: #eff6ff; border: 1px solid #bfdbfe; border-radius: 12px; padding: 20px; margin-bottom: 24px;">
			<p style="margin: 0 0 8px; font-weight: 700; color: #1e40af;">Want to Come Back?</p>
			<p style="margin: 0; color: #1e3a8a; line-height: 1.6;">
				You can reactivate your subscription at any time by visiting <a href="https://rdistro.net/signup" style="color: #7c3aed;">rdistro.net/signup</a> or contacting our support team.
			</p>
		</div>
		<p style="color: #374151; line-height: 1.7;">Thank you for being part of RDistro. We hope to see you again!</p>
		<p style="color: #1f2937; font-weight: 600;">The RDistro Team</p>
		<p style="text-align: center; font-size: 13px; color: #6b7280;">
			Questions? Contact us at <a href="mailto:support@rdistro.net" style="color: #7c3aed;">support@rdistro.net</a>
		</p>
	</div>
`, name)

	utils.SendMail(RegistrationSender, "RDistro", email, subject, body, SupportSender)
}

// TrialWillEnd rappelle au client la fin imminente de son essai gratuit
func TrialWillEnd(email string, trialEnd string) {
	if trialEnd == "" {
		trialEnd = "soon"
	}
	subject := "Your Free Trial Ends Soon - RDistro"
	body := fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 500px; margin: 0 auto; background: white; border-radius: 16px; padding: 32px; border: 1px solid #e2e8f0;">
		<h2 style="color: #7c3aed; text-align: center;">RDistro</h2>
		<h1 style="text-align: center; color: #0f172a;">Your Free Trial Ends Soon!</h1>
		<p style="font-size: 18px; font-weight: bold; color: #f59e0b; text-align: center; margin: 16px 0;">Trial ends: %s</p>
		<p style="color: #64748b; line-height: 1.6;">
			Your 30-day free trial is coming to an end. After this date, your card will be charged <strong>$20/year</strong> to continue your RDistro subscription.
		</p>
		<div style="background: #fef3c7; border: 1px solid #fcd34d; padding: 16px; border-radius: 12px; margin: 20px 0; color: #92400e;">
			<strong>What happens next:</strong><br>
			Your saved card will be automatically charged. No action needed if you want to continue!
		</div>
		<p style="color: #64748b;">If you wish to cancel, please contact us before your trial ends.</p>
		<p style="text-align: center; color: #94a3b8; font-size: 12px; margin-top: 24px;">© RDistro - Music Distribution</p>
	</div>
`, trialEnd)

	utils.SendMail(RegistrationSender, "RDistro", email, subject, body, SupportSender)
}
