package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"international-payments-backend/internal/events"
	handler "international-payments-backend/internal/handlers"
	"international-payments-backend/internal/repository"
	service "international-payments-backend/internal/services/payments"
	"international-payments-backend/internal/services/risk"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, publisher events.Publisher, log *slog.Logger) {
	paymentRepo := repository.NewPaymentRepository(db)
	actorRepo := repository.NewActorRepository(db)

	assessor := risk.NewAssessor(paymentRepo)
	paymentService := service.NewService(paymentRepo, actorRepo, assessor, publisher, log)

	paymentHandler := handler.NewPaymentHandler(paymentService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Payment lifecycle routes
	pay := api.Group("/payments")
	pay.POST("", paymentHandler.CreatePayment)
	pay.GET("/:txId", paymentHandler.GetPayment)
	pay.POST("/:txId/submit", paymentHandler.SubmitForReview)
	pay.POST("/:txId/approve", paymentHandler.ApprovePayment)
	pay.POST("/:txId/reject", paymentHandler.RejectPayment)
	pay.POST("/:txId/process", paymentHandler.ProcessPayment)
	pay.POST("/:txId/cancel", paymentHandler.CancelPayment)

	// Review queue
	api.GET("/approvals/pending", paymentHandler.GetPendingApprovals)

	// Static lookup data for payment forms
	api.GET("/reference", paymentHandler.GetReferenceData)

	// Employee views and reporting
	api.GET("/employees/:id/payments", paymentHandler.GetEmployeePayments)
	reports := api.Group("/reports")
	{
		reports.GET("/stats", paymentHandler.GetPaymentStats)
		reports.GET("/by-country", paymentHandler.GetPaymentsByCountry)
	}
}
