package repository

import (
	"errors"
	"time"

	"rdistro-backend/db"
	"rdistro-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSettings lit le document de réglages unique. En cas d'absence ou
// d'erreur, les valeurs par défaut (essai activé) sont retournées.
func GetSettings() (models.AppSetting, error) {
	settings := models.AppSetting{
		SettingsID:   models.SettingsDocID,
		TrialEnabled: true,
	}

	var stored models.AppSetting
	err := db.DB.First(&stored, "settings_id = ?", models.SettingsDocID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	return stored, nil
}

// UpsertSettings crée ou met à jour le document de réglages
func UpsertSettings(trialEnabled bool) (models.AppSetting, error) {
	settings := models.AppSetting{
		SettingsID:   models.SettingsDocID,
		TrialEnabled: trialEnabled,
		UpdatedAt:    time.Now(),
	}

	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "settings_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"trial_enabled", "updated_at"}),
	}).Create(&settings).Error

	return settings, err
}
