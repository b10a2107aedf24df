package settings

import (
	"net/http"

	"rdistro-backend/models"
	"rdistro-backend/repository"
	"rdistro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetSettings expose publiquement le drapeau d'activation de l'essai
// gratuit; toute erreur de lecture renvoie les valeurs par défaut
// @Summary Get public settings
// @Description Return the trial-enabled flag, defaulting to true on any read failure
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]bool "trialEnabled"
// @Router /settings [get]
func GetSettings(c *gin.Context) {
	stored, err := repository.GetSettings()
	if err != nil {
		utils.LogError(err, "Erreur de lecture des réglages, valeurs par défaut renvoyées")
	}
	c.JSON(http.StatusOK, gin.H{"trialEnabled": stored.TrialEnabled})
}

// UpdateSettings met à jour le document de réglages unique (admin)
// @Summary Update settings
// @Description Upsert the settings singleton; only trialEnabled is meaningful
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body models.AppSettingUpdate true "Settings to merge"
// @Security BasicAuth
// @Success 200 {object} map[string]interface{} "success, settings"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /admin/settings [patch]
func UpdateSettings(c *gin.Context) {
	var input models.AppSettingUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	current, err := repository.GetSettings()
	if err != nil {
		utils.LogError(err, "Erreur de lecture des réglages dans UpdateSettings")
	}

	trialEnabled := current.TrialEnabled
	if input.TrialEnabled != nil {
		trialEnabled = *input.TrialEnabled
	}

	updated, err := repository.UpsertSettings(trialEnabled)
	if err != nil {
		utils.LogError(err, "Erreur d'écriture des réglages dans UpdateSettings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	utils.LogSuccess("Réglages mis à jour")
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": updated})
}
