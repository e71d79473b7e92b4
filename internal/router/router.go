package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"invoicehub/internal/auth"
	"invoicehub/internal/handler/api"
	"invoicehub/internal/middleware"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	verifier auth.Verifier,
	authHandler *api.AuthHandler,
	invoiceHandler *api.InvoiceHandler,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	requireAuth := middleware.Auth(verifier)

	// Root endpoint
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "Invoice Record Service",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"get_all_invoices": "/invoices",
				"get_invoice":      "/invoices/single",
				"get_stats":        "/invoices/stats",
				"create_invoice":   "/invoices",
				"update_invoice":   "/invoices/{id}",
				"delete_invoice":   "/invoices/{id}",
			},
		})
	})

	// Auth routes
	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, requireAuth)

	// Invoice routes, all behind the bearer-token gate
	invoices := e.Group("/invoices", requireAuth)
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/single", invoiceHandler.GetSingle)
	invoices.GET("/stats", invoiceHandler.Stats)
	invoices.POST("", invoiceHandler.Create)
	invoices.PUT("/:id", invoiceHandler.Update)
	invoices.DELETE("/:id", invoiceHandler.Delete)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
