package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to the ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	posthog            *utils.PosthogClientWrapper
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, ph *utils.PosthogClientWrapper) *transactionHandler {
	return &transactionHandler{transactionService: ts, posthog: ph}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, ph *utils.PosthogClientWrapper) {
	h := newTransactionHandler(ts, ph)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.POST("/admission-check", h.checkAdmission)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns the caller's history, newest first, one page at a time.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, next, err := h.transactionService.ListTransactionsPage(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	})
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense. A scoped expense larger than its source's remaining balance is rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance in income source"
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			middleware.PosthogEvent(c, h.posthog, utils.EventAdmissionRejected, map[string]any{
				"amount": req.Amount.String(),
			})
		}
		respondWithError(c, logger, err, "Failed to create transaction")
		return
	}

	middleware.PosthogEvent(c, h.posthog, utils.EventTransactionCreated, map[string]any{
		"type":     string(txn.Type),
		"category": string(txn.Category),
		"scoped":   txn.IsScoped(),
	})
	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update. Expenses are re-checked against their income source.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("transactionID"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deleting an income leaves the expenses it funded in place as unscoped spending.
// @Tags transactions
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	transactionID := c.Param("transactionID")
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID); err != nil {
		respondWithError(c, logger, err, "Failed to delete transaction")
		return
	}

	middleware.PosthogEvent(c, h.posthog, utils.EventTransactionDeleted, map[string]any{
		"transaction_id": transactionID,
	})
	c.Status(http.StatusNoContent)
}

// checkAdmission godoc
// @Summary Check an expense against its income source
// @Description Reports whether an expense of the given amount would be admitted. Nothing is written.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param check body dto.AdmissionCheckRequest true "Candidate expense"
// @Success 200 {object} dto.AdmissionCheckResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/admission-check [post]
func (h *transactionHandler) checkAdmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AdmissionCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	decision, err := h.transactionService.CheckAdmission(c.Request.Context(), userID, req.Amount, req.IncomeSourceID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to check admission")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdmissionCheckResponse(decision))
}
