package models

import (
	"time"
)

const SettingsDocID = "app_settings"

// AppSetting document unique contrôlant l'offre d'essai gratuit
// @Description Réglages globaux de l'application
type AppSetting struct {
	SettingsID   string    `json:"settingsId" gorm:"primaryKey;column:settings_id"`
	TrialEnabled bool      `json:"trialEnabled"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (AppSetting) TableName() string {
	return "settings"
}

// AppSettingUpdate modèle pour mettre à jour les réglages
type AppSettingUpdate struct {
	TrialEnabled *bool `json:"trialEnabled"`
}
