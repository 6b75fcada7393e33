package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// AddCategoryRequest represents the request payload for adding a custom category.
type AddCategoryRequest struct {
	Type models.TransactionType `json:"type" binding:"required,transaction_type"`
	Name string                 `json:"name" binding:"required,min=1,max=100"`
}

// typeFromQuery parses the required ?type= query parameter.
func typeFromQuery(c *gin.Context) (models.TransactionType, error) {
	t := models.TransactionType(c.Query("type"))
	if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
		return "", apperrors.ErrInvalidTransactionType
	}
	return t, nil
}

// AddCategory registers a custom category.
func (h *CategoryHandler) AddCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.AddCustomCategory(userID, req.Type, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories returns the full category set (built-in plus custom) for a type.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txType, err := typeFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	all, err := h.categoryService.AllCategories(userID, txType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": all})
}

// DeleteCategory removes a custom category by type and name.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txType, err := typeFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.RemoveCustomCategory(userID, txType, c.Param("name")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category removed"})
}
