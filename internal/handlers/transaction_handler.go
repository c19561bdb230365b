package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"countcoins/internal/models"
	"countcoins/internal/pagination"
	"countcoins/internal/services"
)

// TransactionHandler handles transaction endpoints.
type TransactionHandler struct {
	service services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler with the given service.
func NewTransactionHandler(service services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// CreateTransactionRequest is the request body for recording a transaction.
// Date is optional and defaults to the current time.
type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,transaction_type"`
	Category    string  `json:"category" binding:"required,transaction_category"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=200"`
	Date        string  `json:"date" binding:"omitempty"`
}

// UpdateTransactionRequest is the request body for updating a transaction.
// Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Type        *string  `json:"type" binding:"omitempty,transaction_type"`
	Category    *string  `json:"category" binding:"omitempty,transaction_category"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Date        *string  `json:"date" binding:"omitempty"`
}

// listTransactionsQuery holds the query parameters for listing transactions.
type listTransactionsQuery struct {
	pagination.PageRequest
	Type      string `form:"type" binding:"omitempty,transaction_type"`
	Category  string `form:"category" binding:"omitempty,transaction_category"`
	StartDate string `form:"startDate" binding:"omitempty"`
	EndDate   string `form:"endDate" binding:"omitempty"`
}

// Create godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "Transaction details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		date = parsed
	}

	userID, _ := getUserID(c)
	tx, err := h.service.Create(userID,
		models.TransactionType(req.Type),
		models.TransactionCategory(req.Category),
		req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, tx, "Transaction created successfully")
}

// List godoc
// @Summary List transactions
// @Description Returns the user's transactions newest-first with optional filters
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10) maximum(100)
// @Param type query string false "Filter by type (income or expense)"
// @Param category query string false "Filter by category (needs, wants, savings)"
// @Param startDate query string false "Earliest date (inclusive)"
// @Param endDate query string false "Latest date (inclusive)"
// @Success 200 {object} map[string]interface{}
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	query.Defaults()

	filter := services.TransactionFilter{}
	if query.Type != "" {
		t := models.TransactionType(query.Type)
		filter.Type = &t
	}
	if query.Category != "" {
		cat := models.TransactionCategory(query.Category)
		filter.Category = &cat
	}
	if query.StartDate != "" {
		start, err := parseDate(query.StartDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := parseDate(query.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.EndDate = &end
	}

	userID, _ := getUserID(c)
	txs, total, err := h.service.List(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, txs, pagination.NewMeta(query.PageRequest, total))
}

// Get godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, _ := getUserID(c)
	tx, err := h.service.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, tx, "")
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	update := services.TransactionUpdate{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		update.Type = &t
	}
	if req.Category != nil {
		cat := models.TransactionCategory(*req.Category)
		update.Category = &cat
	}
	if req.Date != nil {
		parsed, derr := parseDate(*req.Date)
		if derr != nil {
			respondWithError(c, derr)
			return
		}
		update.Date = &parsed
	}

	userID, _ := getUserID(c)
	tx, err := h.service.Update(userID, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, tx, "Transaction updated successfully")
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, _ := getUserID(c)
	if err := h.service.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Transaction deleted successfully")
}

// Stats godoc
// @Summary Get aggregate transaction statistics
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /transactions/stats [get]
func (h *TransactionHandler) Stats(c *gin.Context) {
	userID, _ := getUserID(c)

	stats, err := h.service.Stats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, stats, "")
}
