package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/pagination"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	budgetService      services.BudgetServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, budgetService services.BudgetServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, budgetService: budgetService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
type CreateTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"omitempty,max=255"`
	Category    string                 `json:"category" binding:"required,min=1,max=100"`
	AccountID   *uint                  `json:"account_id"`
	Date        *time.Time             `json:"date"`
}

// UpdateTransactionRequest represents the request payload for editing a transaction.
type UpdateTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"omitempty,max=255"`
	Category    string                 `json:"category" binding:"required,min=1,max=100"`
}

// ReassignAccountRequest represents the request payload for moving a
// transaction between accounts. A null account_id makes it unassigned.
type ReassignAccountRequest struct {
	AccountID *uint `json:"account_id"`
}

// CreateTransaction records a new transaction and reports whether it tripped
// a budget alert.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	transaction, err := h.transactionService.AddTransaction(
		userID, req.Type, req.Amount, req.Description, req.Category, req.AccountID, date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alert, err := h.budgetService.CheckAlert(userID, transaction)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction, "budget_alert": alert})
}

// GetTransactions lists transactions over an optional date range. A start
// date without an end date selects the whole calendar month containing it.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if end != nil && start == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end requires start"))
		return
	}

	transactions, err := h.transactionService.GetTransactions(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// ListTransactions returns a filtered, paginated page of transactions.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			respondWithError(c, apperrors.ErrInvalidTransactionType)
			return
		}
		filter.Type = &t
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("account_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid account_id"))
			return
		}
		id := uint(parsed)
		filter.AccountID = &id
	}

	result, err := h.transactionService.ListTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecentTransactions returns the newest transactions, most recent first.
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 5
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	transactions, err := h.transactionService.GetRecentTransactions(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransaction retrieves one transaction by id.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction edits a transaction in place.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(
		userID, c.Param("id"), req.Type, req.Amount, req.Description, req.Category,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// ReassignAccount moves a transaction to another account or unassigns it.
func (h *TransactionHandler) ReassignAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReassignAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.ReassignAccount(userID, c.Param("id"), req.AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction permanently.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
