package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"international-payments-backend/internal/apperrors"
	"international-payments-backend/internal/models"
	service "international-payments-backend/internal/services/payments"
	"international-payments-backend/internal/validation"
)

type PaymentHandler struct {
	service *service.Service
}

func NewPaymentHandler(s *service.Service) *PaymentHandler {
	return &PaymentHandler{service: s}
}

// actorID reads the authenticated employee identity supplied by the
// upstream auth layer.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-Employee-ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid employee identity"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	var serr *apperrors.StateError
	if errors.As(err, &serr) {
		c.JSON(http.StatusConflict, gin.H{"error": serr.Error()})
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "payment was modified concurrently, reload and retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type createPaymentPayload struct {
	CustomerID string `json:"customer_id"`
	validation.PaymentRequest
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	var payload createPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}

	view, err := h.service.CreatePayment(c.Request.Context(), payload.PaymentRequest, employeeID, customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "payment created", "payment": view})
}

func (h *PaymentHandler) SubmitForReview(c *gin.Context) {
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	view, err := h.service.SubmitForReview(c.Request.Context(), c.Param("txId"), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment submitted", "payment": view})
}

func (h *PaymentHandler) ApprovePayment(c *gin.Context) {
	approverID, ok := actorID(c)
	if !ok {
		return
	}

	var payload struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&payload) // note is optional

	view, err := h.service.ApprovePayment(c.Request.Context(), c.Param("txId"), approverID, payload.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment approved", "payment": view})
}

func (h *PaymentHandler) RejectPayment(c *gin.Context) {
	approverID, ok := actorID(c)
	if !ok {
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := h.service.RejectPayment(c.Request.Context(), c.Param("txId"), approverID, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment rejected", "payment": view})
}

func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	view, err := h.service.ProcessPayment(c.Request.Context(), c.Param("txId"), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment processing", "payment": view})
}

func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&payload)

	view, err := h.service.CancelPayment(c.Request.Context(), c.Param("txId"), employeeID, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment cancelled", "payment": view})
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	view, err := h.service.GetPayment(c.Request.Context(), c.Param("txId"), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": view})
}

func parseQuery(c *gin.Context) service.Query {
	var q service.Query
	q.Status = models.PaymentStatus(c.Query("status"))
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.To = &t
		}
	}
	q.Page = intQuery(c, "page", 1)
	q.PageSize = intQuery(c, "page_size", 0)
	return q
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func (h *PaymentHandler) GetEmployeePayments(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee ID"})
		return
	}

	list, err := h.service.GetEmployeePayments(c.Request.Context(), employeeID, requesterID, parseQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) GetPendingApprovals(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	list, err := h.service.GetPendingApprovals(c.Request.Context(), requesterID, parseQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) GetPaymentStats(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	stats, err := h.service.GetPaymentStats(c.Request.Context(), requesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetReferenceData serves the static lookup tables the payment form needs.
func (h *PaymentHandler) GetReferenceData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"currencies":    validation.SupportedCurrencies(),
		"purpose_codes": validation.PurposeCodes(),
	})
}

func (h *PaymentHandler) GetPaymentsByCountry(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	rows, err := h.service.GetPaymentsByCountry(c.Request.Context(), requesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": rows})
}
