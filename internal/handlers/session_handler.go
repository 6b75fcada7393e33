package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/session"
)

// sessionTTL is how long an untouched wizard flow survives before the next
// request sweeps it away.
const sessionTTL = 30 * time.Minute

// SessionHandler exposes the wizard flow state the presentation layer drives.
// The chat layer is stateless between messages; it stores each user's
// position in a guided flow here and asks what kind of input comes next.
type SessionHandler struct {
	store *session.Store
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// UpdateSessionRequest advances a flow and merges any newly collected input.
type UpdateSessionRequest struct {
	Step         string  `json:"step" binding:"required"`
	GoalName     *string `json:"goal_name,omitempty"`
	GoalAmount   *int64  `json:"goal_amount,omitempty"`
	ReportStart  *string `json:"report_start,omitempty"`
	ReportFormat *string `json:"report_format,omitempty"`
	Category     *string `json:"category,omitempty"`
}

func sessionResponse(state session.State) gin.H {
	return gin.H{
		"step":    state.Step,
		"expects": state.Step.Expects().String(),
		"goal": gin.H{
			"name":   state.Goal.Name,
			"amount": state.Goal.Amount,
		},
		"report": gin.H{
			"start":  state.Report.Start,
			"format": state.Report.Format,
		},
		"category": state.Category,
	}
}

// Get returns the user's current flow state. Stale flows are swept first, so
// an abandoned wizard resolves to idle.
func (h *SessionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.store.Expire(sessionTTL)
	c.JSON(http.StatusOK, sessionResponse(h.store.Get(userID)))
}

// Update moves the user to the requested step, merging any collected input
// into the flow's drafts.
func (h *SessionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	step := session.Step(req.Step)
	if !step.Valid() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown step: "+req.Step))
		return
	}

	h.store.Expire(sessionTTL)
	state := h.store.Get(userID)
	if req.GoalName != nil {
		state.Goal.Name = *req.GoalName
	}
	if req.GoalAmount != nil {
		state.Goal.Amount = *req.GoalAmount
	}
	if req.ReportStart != nil {
		start, err := time.Parse("2006-01-02", *req.ReportStart)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "report_start must be YYYY-MM-DD"))
			return
		}
		state.Report.Start = start
	}
	if req.ReportFormat != nil {
		state.Report.Format = *req.ReportFormat
	}
	if req.Category != nil {
		state.Category = *req.Category
	}
	state.Step = step
	h.store.Set(userID, state)

	c.JSON(http.StatusOK, sessionResponse(h.store.Get(userID)))
}

// Clear abandons the user's flow.
func (h *SessionHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.store.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Session cleared"})
}
