package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/core/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
	"github.com/staffbook/staff_ledger_app/internal/middleware"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
	}
}

// createPayment godoc
// @Summary Settle pending entries into a payment
// @Description Atomically creates a payment over the selected pending entries and marks them paid
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   payment body dto.CreatePaymentRequest true "Payment details and selected entry IDs"
// @Success 201 {object} dto.PaymentResponse "The created payment"
// @Failure 400 {object} map[string]string "Invalid selection or non-positive total"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Entries were concurrently paid"
// @Failure 500 {object} map[string]string "Failed to create payment"
// @Router /collaborators/{collaboratorID}/payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")

	createReq := dto.CreatePaymentRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), collaboratorID, createReq, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSelection), errors.Is(err, services.ErrNonPositiveAmount):
			logger.Warn("Rejected payment request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Payment request lost a race", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "One or more entries were already paid by a concurrent request"})
		default:
			logger.Error("Failed to create payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment
// @Description Retrieves a payment with its entry IDs and per-day breakdown
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse "The payment"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payment not found", slog.String("payment_id", paymentID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("Failed to get payment from service", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// deletePayment godoc
// @Summary Undo a payment
// @Description Deletes the payment and reverts every entry it covered back to pending
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.DeletePaymentResponse "IDs of the reverted entries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to undo payment"
// @Router /payments/{paymentID} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	revertedIDs, err := h.paymentService.DeletePayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payment not found for undo", slog.String("payment_id", paymentID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("Failed to undo payment in service", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to undo payment"})
		return
	}

	c.JSON(http.StatusOK, dto.DeletePaymentResponse{RevertedEntryIDs: revertedIDs})
}

// listPayments godoc
// @Summary List a collaborator's payments
// @Description Retrieves a paginated list of payments, newest first
// @Tags payments
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListPaymentsResponse "Payments and next page token"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Router /collaborators/{collaboratorID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")

	params := dto.ListPaymentsParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	payments, nextToken, err := h.paymentService.ListPayments(c.Request.Context(), collaboratorID, params)
	if err != nil {
		logger.Error("Failed to list payments in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	})
}

// previewSelection godoc
// @Summary Preview a whole-day selection of pending entries
// @Description Resolves which pending entries the requested days cover and the total a payment over them would settle
// @Tags payments
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   days query string false "Comma separated days (YYYY-MM-DD); empty selects every pending day"
// @Success 200 {object} dto.SelectionPreviewResponse "Selected days, entry IDs and total"
// @Failure 400 {object} map[string]string "A requested day has no pending entries"
// @Failure 500 {object} map[string]string "Failed to preview selection"
// @Router /collaborators/{collaboratorID}/selection [get]
func (h *paymentHandler) previewSelection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")

	var days []string
	if raw := c.Query("days"); raw != "" {
		days = strings.Split(raw, ",")
	}

	preview, err := h.paymentService.PreviewSelection(c.Request.Context(), collaboratorID, days)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to preview selection", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview selection"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSelectionPreviewResponse(preview))
}

// registerPaymentRoutes registers payment specific routes.
func registerPaymentRoutes(group *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, mutationLimiter gin.HandlerFunc) {
	h := newPaymentHandler(paymentService)

	group.POST("/collaborators/:collaboratorID/payments", mutationLimiter, h.createPayment)
	group.GET("/collaborators/:collaboratorID/payments", h.listPayments)
	group.GET("/collaborators/:collaboratorID/selection", h.previewSelection)

	payments := group.Group("/payments")
	payments.GET("/:paymentID", h.getPayment)
	payments.DELETE("/:paymentID", mutationLimiter, h.deletePayment)
}
