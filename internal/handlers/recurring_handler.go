package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// RecurringHandler handles recurring-rule requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	userService      services.UserServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, userService services.UserServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, userService: userService}
}

// AddRuleRequest represents the request payload for creating a recurring rule.
type AddRuleRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"required,min=1,max=255"`
	Category    string                 `json:"category" binding:"required,min=1,max=100"`
	DayOfMonth  int                    `json:"day_of_month" binding:"required,min=1,max=28"`
}

// requirePremium rejects the request when the user's subscription has lapsed.
func (h *RecurringHandler) requirePremium(userID int64) error {
	status, err := h.userService.GetPremiumStatus(userID)
	if err != nil {
		return err
	}
	if !status.IsPremium {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Recurring transactions require an active subscription")
	}
	return nil
}

// AddRule creates a recurring transaction rule.
func (h *RecurringHandler) AddRule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.requirePremium(userID); err != nil {
		respondWithError(c, err)
		return
	}

	var req AddRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.recurringService.AddRule(userID, req.Type, req.Amount, req.Description, req.Category, req.DayOfMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// GetRules lists the user's recurring rules.
func (h *RecurringHandler) GetRules(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rules, err := h.recurringService.GetRules(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// DeleteRule removes a recurring rule.
func (h *RecurringHandler) DeleteRule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRule(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted"})
}
