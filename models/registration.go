package models

import (
	"time"
)

type PlanType string

const (
	PlanArtist PlanType = "artist"
	PlanLabel  PlanType = "label"
)

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentTrial     PaymentStatus = "trial"
)

type SubscriptionStatus string

const (
	SubscriptionTrialing  SubscriptionStatus = "trialing"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Registration représente une inscription au service de distribution
// @Description Modèle complet d'une inscription
type Registration struct {
	ID                 string             `json:"id" gorm:"primaryKey"`
	Plan               PlanType           `json:"plan" gorm:"type:varchar(10)"`
	Name               string             `json:"name"`
	Email              string             `json:"email" gorm:"uniqueIndex"`
	Phone              string             `json:"phone"`
	Country            string             `json:"country"`
	ArtistName         string             `json:"artistName,omitempty"`
	LabelName          string             `json:"labelName,omitempty"`
	SocialLinks        string             `json:"socialLinks,omitempty"`
	SpotifyLink        string             `json:"spotifyLink,omitempty"`
	PaymentIntentID    string             `json:"paymentIntentId" gorm:"column:payment_intent_id"`
	Amount             float64            `json:"amount"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus" gorm:"type:varchar(20)"`
	FreeTrial          bool               `json:"freeTrial"`
	TrialEndDate       *time.Time         `json:"trialEndDate,omitempty"`
	AccountCreated     bool               `json:"accountCreated"`
	SubscriptionID     string             `json:"subscriptionId,omitempty" gorm:"column:subscription_id;index"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus,omitempty" gorm:"type:varchar(20)"`
	LastPaymentDate    *time.Time         `json:"lastPaymentDate,omitempty"`
	LastPaymentAmount  float64            `json:"lastPaymentAmount,omitempty"`
	// Garde-fous contre les livraisons webhook rejouées ou désordonnées
	LastEventAt   int64  `json:"-" gorm:"column:last_event_at"`
	LastInvoiceID string `json:"-" gorm:"column:last_invoice_id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" swaggerignore:"true"`
}

func (Registration) TableName() string {
	return "registrations"
}

// RegistrationCreate modèle pour finaliser une inscription après paiement
// @Description modèle pour finaliser une inscription
type RegistrationCreate struct {
	Plan            PlanType `json:"plan" binding:"required" example:"label"`
	Name            string   `json:"name" binding:"required" example:"Jane Doe"`
	Email           string   `json:"email" binding:"required,email" example:"jane@exemple.com"`
	Phone           string   `json:"phone" binding:"required" example:"+33612345678"`
	Country         string   `json:"country" binding:"required" example:"France"`
	ArtistName      string   `json:"artistName" example:"Jane"`
	LabelName       string   `json:"labelName" example:"Jane Records"`
	SocialLinks     string   `json:"socialLinks" example:"https://instagram.com/jane"`
	SpotifyLink     string   `json:"spotifyLink" example:"https://open.spotify.com/artist/xyz"`
	PaymentIntentID string   `json:"paymentIntentId" binding:"required"`
	Amount          float64  `json:"amount"`
	FreeTrial       bool     `json:"freeTrial"`
	TrialEndDate    *time.Time `json:"trialEndDate"`
}

// PaymentIntentRequest modèle pour initier un paiement d'abonnement
// @Description modèle pour initier un paiement
type PaymentIntentRequest struct {
	Plan      PlanType `json:"plan" binding:"required" example:"artist"`
	Email     string   `json:"email" binding:"required,email" example:"jane@exemple.com"`
	FreeTrial bool     `json:"freeTrial" example:"false"`
}

// RegistrationStats statistiques agrégées pour le dashboard admin
type RegistrationStats struct {
	Total     int64   `json:"total"`
	Pending   int64   `json:"pending"`
	Completed int64   `json:"completed"`
	Trials    int64   `json:"trials"`
	Revenue   float64 `json:"revenue"`
}
