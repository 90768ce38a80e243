package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
	posthog        *utils.PosthogClientWrapper
}

func registerSavingsRoutes(rg *gin.RouterGroup, ss portssvc.SavingsSvcFacade, ph *utils.PosthogClientWrapper) {
	h := &savingsHandler{savingsService: ss, posthog: ph}

	goals := rg.Group("/goals")
	{
		goals.GET("", h.listGoals)
		goals.POST("", h.createGoal)
		goals.GET("/:goalID", h.getGoal)
		goals.PUT("/:goalID", h.updateGoal)
		goals.DELETE("/:goalID", h.deleteGoal)
		goals.POST("/:goalID/contributions", h.contribute)
	}
}

// listGoals godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SavingsGoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals [get]
func (h *savingsHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := h.savingsService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponses(goals))
}

// createGoal godoc
// @Summary Create a savings goal
// @Description Creates a goal with a future target date. An initial contribution is recorded as a savings expense.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals [post]
func (h *savingsHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	goal, err := h.savingsService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create goal")
		return
	}

	logger.Info("Savings goal created", slog.String("goal_id", goal.GoalID))
	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

// getGoal godoc
// @Summary Get a savings goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param goalID path string true "Goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{goalID} [get]
func (h *savingsHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal, err := h.savingsService.GetGoal(c.Request.Context(), userID, c.Param("goalID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to get goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// updateGoal godoc
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goalID path string true "Goal ID"
// @Param goal body dto.UpdateSavingsGoalRequest true "Fields to change"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{goalID} [put]
func (h *savingsHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	goal, err := h.savingsService.UpdateGoal(c.Request.Context(), userID, c.Param("goalID"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Description The expenses that funded the goal stay in the ledger.
// @Tags goals
// @Security BearerAuth
// @Param goalID path string true "Goal ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /goals/{goalID} [delete]
func (h *savingsHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.savingsService.DeleteGoal(c.Request.Context(), userID, c.Param("goalID")); err != nil {
		respondWithError(c, logger, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// contribute godoc
// @Summary Contribute to a savings goal
// @Description Records a savings expense, optionally drawn from an income source, and adds it to the goal.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goalID path string true "Goal ID"
// @Param contribution body dto.ContributionRequest true "Contribution"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance in income source"
// @Failure 500 {object} ErrorResponse
// @Router /goals/{goalID}/contributions [post]
func (h *savingsHandler) contribute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	goal, err := h.savingsService.Contribute(c.Request.Context(), userID, c.Param("goalID"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record contribution")
		return
	}

	middleware.PosthogEvent(c, h.posthog, utils.EventGoalContribution, map[string]any{
		"goal_id": goal.GoalID,
		"amount":  req.Amount.String(),
	})
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}
