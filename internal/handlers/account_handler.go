package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// AccountHandler handles account and transfer requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	InitialBalance int64  `json:"initial_balance"`
}

// RenameAccountRequest represents the request payload for renaming an account.
type RenameAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// TransferRequest represents the request payload for moving money between
// two accounts.
type TransferRequest struct {
	FromAccountID uint   `json:"from_account_id" binding:"required"`
	ToAccountID   uint   `json:"to_account_id" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Description   string `json:"description" binding:"omitempty,max=255"`
}

// CreateAccount creates a new account for the authenticated user.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(userID, req.Name, req.InitialBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts lists the user's accounts with derived balances and the total.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balances, err := h.accountService.GetAccountsWithBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.accountService.TotalBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": balances, "total_balance": total})
}

// RenameAccount changes an account's name.
func (h *AccountHandler) RenameAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.RenameAccount(userID, accountID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount removes an account. Its transactions become unassigned.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// Transfer moves money between two of the user's accounts.
func (h *AccountHandler) Transfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transfer, err := h.accountService.Transfer(userID, req.FromAccountID, req.ToAccountID, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transfer": transfer})
}

// GetTransfers lists the user's transfers, newest first.
func (h *AccountHandler) GetTransfers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transfers, err := h.accountService.GetTransfers(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transfers": transfers})
}
