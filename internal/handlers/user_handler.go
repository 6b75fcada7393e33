package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// trialDays is the length of the one-time free trial.
const trialDays = 7

// UserHandler handles user lifecycle, premium and reminder settings requests.
type UserHandler struct {
	userService   services.UserServicer
	backupService services.BackupServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, backupService services.BackupServicer) *UserHandler {
	return &UserHandler{userService: userService, backupService: backupService}
}

// UpdateRemindersRequest represents the request payload for reminder settings.
// Omitted fields are left unchanged.
type UpdateRemindersRequest struct {
	DailyReminder *bool   `json:"daily_reminder"`
	WeeklySummary *bool   `json:"weekly_summary"`
	WeeklyDay     *string `json:"weekly_day" binding:"omitempty,weekday"`
}

// Register ensures the user exists and returns their record.
func (h *UserHandler) Register(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetOrCreateUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetPremiumStatus returns the lazily recomputed premium state.
func (h *UserHandler) GetPremiumStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.userService.GetPremiumStatus(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"premium": status})
}

// StartTrial grants the one-time free trial.
func (h *UserHandler) StartTrial(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.userService.GetPremiumStatus(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if status.UsedTrial {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrForbidden, "Trial already used"))
		return
	}

	endDate, err := h.userService.GrantPremium(userID, trialDays, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"end_date": endDate})
}

// GetReminders returns the user's reminder settings.
func (h *UserHandler) GetReminders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.userService.GetReminderSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": settings})
}

// UpdateReminders partially updates reminder settings.
func (h *UserHandler) UpdateReminders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.userService.UpdateReminderSettings(userID, req.DailyReminder, req.WeeklySummary, req.WeeklyDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": settings})
}

// DeleteData erases everything the engine stores about the user.
func (h *UserHandler) DeleteData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUserData(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All data deleted"})
}

// ExportBackup downloads the user's full data set as JSON.
func (h *UserHandler) ExportBackup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := h.backupService.ExportJSON(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="backup.json"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// RestoreBackup replaces the user's data set with an uploaded backup.
func (h *UserHandler) RestoreBackup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "failed to read request body"))
		return
	}

	if err := h.backupService.Restore(userID, payload); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored"})
}
