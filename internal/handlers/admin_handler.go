package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// AdminHandler handles operator-facing requests. All routes are behind the
// admin gate.
type AdminHandler struct {
	adminService services.AdminServicer
	userService  services.UserServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminServicer, userService services.UserServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService, userService: userService}
}

// GrantPremiumRequest represents the request payload for granting a
// subscription.
type GrantPremiumRequest struct {
	Days int `json:"days" binding:"required,min=1,max=3650"`
}

// BroadcastRequest represents the request payload for a broadcast message.
type BroadcastRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

// adminTargetID parses the target user id path parameter.
func adminTargetID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid user_id")
	}
	return id, nil
}

// GetStats returns aggregate user counts.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetUserDetails returns one user's premium state and activity volume.
func (h *AdminHandler) GetUserDetails(c *gin.Context) {
	targetID, err := adminTargetID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	details, err := h.adminService.UserDetails(targetID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": details})
}

// GrantPremium extends a user's subscription.
func (h *AdminHandler) GrantPremium(c *gin.Context) {
	targetID, err := adminTargetID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GrantPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	endDate, err := h.userService.GrantPremium(targetID, req.Days, false)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"end_date": endDate})
}

// RevokePremium ends a user's subscription immediately.
func (h *AdminHandler) RevokePremium(c *gin.Context) {
	targetID, err := adminTargetID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.RevokePremium(targetID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Premium revoked"})
}

// Broadcast sends a message to every registered user.
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.adminService.Broadcast(req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
