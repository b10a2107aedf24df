package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rdistro-backend/db"
	"rdistro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateEmail signale qu'une inscription existe déjà pour cet email
var ErrDuplicateEmail = errors.New("email already registered")

func newRegistrationID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("reg_%d_%s", time.Now().UnixMilli(), suffix)
}

// AddRegistration persiste une nouvelle inscription. L'email est normalisé
// en minuscules; un index unique en base ferme la course entre deux
// inscriptions concurrentes sur le même email.
func AddRegistration(reg *models.Registration) (*models.Registration, error) {
	reg.Email = strings.ToLower(reg.Email)

	existing, err := GetRegistrationByEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	reg.ID = newRegistrationID()
	reg.AccountCreated = false
	reg.CreatedAt = time.Now()

	if err := db.DB.Create(reg).Error; err != nil {
		return nil, err
	}
	return reg, nil
}

// GetRegistrations retourne toutes les inscriptions, les plus récentes d'abord
func GetRegistrations() ([]models.Registration, error) {
	var registrations []models.Registration
	err := db.DB.Order("created_at DESC").Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func GetRegistrationByID(id string) (*models.Registration, error) {
	var reg models.Registration
	err := db.DB.First(&reg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func GetRegistrationByEmail(email string) (*models.Registration, error) {
	var reg models.Registration
	err := db.DB.First(&reg, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetRegistrationBySubscription retrouve l'inscription liée à un abonnement
// Stripe, avec repli sur l'email quand l'identifiant n'est pas encore stocké
func GetRegistrationBySubscription(subscriptionID string, email string) (*models.Registration, error) {
	if subscriptionID != "" {
		var reg models.Registration
		err := db.DB.First(&reg, "subscription_id = ?", subscriptionID).Error
		if err == nil {
			return &reg, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if email == "" {
		return nil, nil
	}
	return GetRegistrationByEmail(email)
}

func EmailExists(email string) (bool, error) {
	reg, err := GetRegistrationByEmail(email)
	if err != nil {
		return false, err
	}
	return reg != nil, nil
}

// UpdateRegistration fusionne les champs fournis dans l'inscription existante
// et retourne l'enregistrement à jour, ou nil si l'id est inconnu
func UpdateRegistration(id string, updates map[string]interface{}) (*models.Registration, error) {
	result := db.DB.Model(&models.Registration{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return GetRegistrationByID(id)
}

// DeleteRegistration supprime par id et indique si une ligne a été retirée
func DeleteRegistration(id string) (bool, error) {
	result := db.DB.Delete(&models.Registration{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetStats agrège l'ensemble des inscriptions (full scan, volumétrie faible)
func GetStats() (models.RegistrationStats, error) {
	var stats models.RegistrationStats

	registrations, err := GetRegistrations()
	if err != nil {
		return stats, err
	}

	for _, reg := range registrations {
		stats.Total++
		if reg.AccountCreated {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if reg.FreeTrial {
			stats.Trials++
		}
		if reg.PaymentStatus == models.PaymentSucceeded {
			stats.Revenue += reg.Amount
		}
	}

	return stats, nil
}
