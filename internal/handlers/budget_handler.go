package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"countcoins/internal/models"
	"countcoins/internal/services"
)

// BudgetHandler handles budget endpoints.
type BudgetHandler struct {
	service services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler with the given service.
func NewBudgetHandler(service services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// BudgetRequest is the request body for creating or updating a budget. The
// percentage fields are required only for the custom rule.
type BudgetRequest struct {
	Rule    string   `json:"rule" binding:"required,budget_rule"`
	Needs   *float64 `json:"needs" binding:"omitempty,gte=0,lte=100"`
	Wants   *float64 `json:"wants" binding:"omitempty,gte=0,lte=100"`
	Savings *float64 `json:"savings" binding:"omitempty,gte=0,lte=100"`
}

// allocation converts the optional percentage fields into a custom allocation.
// Returns nil when none were supplied, letting preset rules resolve themselves.
func (r *BudgetRequest) allocation() *services.Allocation {
	if r.Needs == nil && r.Wants == nil && r.Savings == nil {
		return nil
	}
	alloc := &services.Allocation{}
	if r.Needs != nil {
		alloc.Needs = *r.Needs
	}
	if r.Wants != nil {
		alloc.Wants = *r.Wants
	}
	if r.Savings != nil {
		alloc.Savings = *r.Savings
	}
	return alloc
}

// Create godoc
// @Summary Create the user's budget
// @Description Each user may hold a single budget; creating a second one fails
// @Tags budget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "Budget rule"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /budget [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	userID, _ := getUserID(c)
	budget, err := h.service.Create(userID, models.BudgetRule(req.Rule), req.allocation())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, budget, "Budget created successfully")
}

// Get godoc
// @Summary Get the user's budget
// @Description Responds 200 with null data when no budget exists yet
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /budget [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID, _ := getUserID(c)

	budget, err := h.service.Get(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budget == nil {
		respondSuccess(c, http.StatusOK, nil, "No budget found")
		return
	}

	respondSuccess(c, http.StatusOK, budget, "")
}

// Update godoc
// @Summary Update the user's budget
// @Tags budget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "Budget rule"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /budget [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	userID, _ := getUserID(c)
	budget, err := h.service.Update(userID, models.BudgetRule(req.Rule), req.allocation())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, budget, "Budget updated successfully")
}

// Delete godoc
// @Summary Delete the user's budget
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /budget [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID, _ := getUserID(c)

	if err := h.service.Delete(userID); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Budget deleted successfully")
}

// Summary godoc
// @Summary Get spending versus budget targets
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /budget/summary [get]
func (h *BudgetHandler) Summary(c *gin.Context) {
	userID, _ := getUserID(c)

	summary, err := h.service.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, summary, "")
}
