package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"countcoins/internal/services"
)

// GoalHandler handles savings goal endpoints.
type GoalHandler struct {
	service services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler with the given service.
func NewGoalHandler(service services.GoalServicer) *GoalHandler {
	return &GoalHandler{service: service}
}

// CreateGoalRequest is the request body for creating a savings goal.
type CreateGoalRequest struct {
	Title         string   `json:"title" binding:"required,max=100"`
	TargetAmount  float64  `json:"targetAmount" binding:"required,gt=0"`
	CurrentAmount *float64 `json:"currentAmount" binding:"omitempty,gte=0"`
	Deadline      *string  `json:"deadline" binding:"omitempty"`
}

// UpdateGoalRequest is the request body for updating a goal. Absent fields are
// left unchanged.
type UpdateGoalRequest struct {
	Title         *string  `json:"title" binding:"omitempty,max=100"`
	TargetAmount  *float64 `json:"targetAmount" binding:"omitempty,gt=0"`
	CurrentAmount *float64 `json:"currentAmount" binding:"omitempty,gte=0"`
	Deadline      *string  `json:"deadline" binding:"omitempty"`
}

// Create godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "Goal details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := parseDate(*req.Deadline)
		if err != nil {
			respondWithError(c, err)
			return
		}
		deadline = &parsed
	}

	current := 0.0
	if req.CurrentAmount != nil {
		current = *req.CurrentAmount
	}

	userID, _ := getUserID(c)
	goal, err := h.service.Create(userID, req.Title, req.TargetAmount, current, deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, goal, "Goal created successfully")
}

// List godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID, _ := getUserID(c)

	goals, err := h.service.List(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, goals, "")
}

// Get godoc
// @Summary Get a savings goal by ID
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, _ := getUserID(c)
	goal, err := h.service.GetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, goal, "")
}

// Update godoc
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body UpdateGoalRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	update := services.GoalUpdate{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	}
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, derr := parseDate(*req.Deadline)
		if derr != nil {
			respondWithError(c, derr)
			return
		}
		update.Deadline = &parsed
	}

	userID, _ := getUserID(c)
	goal, err := h.service.Update(userID, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, goal, "Goal updated successfully")
}

// Delete godoc
// @Summary Delete a savings goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
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

	respondSuccess(c, http.StatusOK, nil, "Goal deleted successfully")
}

// Progress godoc
// @Summary Get aggregate goal progress
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /goals/progress [get]
func (h *GoalHandler) Progress(c *gin.Context) {
	userID, _ := getUserID(c)

	progress, err := h.service.Progress(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, progress, "")
}
