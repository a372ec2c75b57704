package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/factuurlijk/factuurlijk/internal/api/v1"
	"github.com/factuurlijk/factuurlijk/internal/rest/middleware"
)

type Handlers struct {
	Invoice  *v1.InvoiceHandler
	Customer *v1.CustomerHandler
	Profile  *v1.ProfileHandler
	Payment  *v1.PaymentHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The payment provider webhook carries no tenant identity.
	router.POST("/v1/payments/webhook", handlers.Payment.ConfirmClaim)

	v1Group := router.Group("/v1", middleware.TenantRequired)
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/draft", handlers.Invoice.DraftInvoice)
		invoices.GET("/next-number", handlers.Invoice.NextInvoiceNumber)
		invoices.POST("/bulk/status", handlers.Invoice.BulkUpdateStatus)
		invoices.POST("/bulk/delete", handlers.Invoice.BulkDelete)
		invoices.POST("/bulk/export", handlers.Invoice.BulkExport)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.POST("/:id/paid", handlers.Invoice.MarkPaid)
		invoices.POST("/:id/open", handlers.Invoice.MarkOpen)
		invoices.POST("/:id/export", handlers.Invoice.ExportInvoice)
	}

	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	profiles := router.Group("/profile")
	{
		profiles.POST("", handlers.Profile.CreateProfile)
		profiles.GET("", handlers.Profile.GetProfile)
		profiles.PUT("", handlers.Profile.UpdateProfile)
		profiles.POST("/logo", handlers.Profile.UploadLogo)
		profiles.GET("/logo", handlers.Profile.GetLogoUrl)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/claims", handlers.Payment.CreateClaim)
		payments.GET("/claims/:id", handlers.Payment.GetClaim)
	}
}
