package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"cabzii/internal/auth"
	intconfig "cabzii/internal/config"
	h "cabzii/internal/http/handlers"
	"cabzii/internal/http/middleware"
)

func NewRouter(env intconfig.Env, tokens auth.Manager) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.Static("/uploads", env.UploadDir)

	clientAuth := middleware.RequireAuth(tokens, auth.RoleClient)
	adminAuth := middleware.RequireAuth(tokens, auth.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Client OTP login
		authGroup := api.Group("/auth")
		authGroup.POST("/send-otp", h.SendOTP)
		authGroup.POST("/verify-otp", h.VerifyOTP)

		// Client profile & own bookings
		clients := api.Group("/clients", clientAuth)
		clients.GET("/me", h.GetClientProfile)
		clients.PUT("/me", h.UpdateClientProfile)
		clients.GET("/me/bookings", h.GetMyBookings)

		// Bookings (kind is tour|cab|driver|vehicle)
		bookings := api.Group("/bookings")
		bookings.POST("/:kind", clientAuth, h.CreateBooking)
		bookings.PUT("/:kind/:bookingId/cancel", clientAuth, h.CancelBooking)
		bookings.GET("/:kind/:bookingId/invoice", clientAuth, h.GetBookingInvoicePDF)
		bookings.GET("/:kind", adminAuth, h.ListBookings)
		bookings.GET("/:kind/:bookingId", adminAuth, h.GetBooking)
		bookings.PUT("/:kind/:bookingId", adminAuth, h.UpdateBooking)

		// Catalog (resource is tour|vehicle|driver|cab); reads are public
		catalog := api.Group("/catalog")
		catalog.GET("/:resource", h.ListCatalogEntries)
		catalog.GET("/:resource/:id", h.GetCatalogEntry)
		catalog.POST("/:resource", adminAuth, h.CreateCatalogEntry)
		catalog.PUT("/:resource/:id", adminAuth, h.UpdateCatalogEntry)
		catalog.DELETE("/:resource/:id", adminAuth, h.DeleteCatalogEntry)
		catalog.POST("/:resource/:id/children", adminAuth, h.AddCatalogChild)
		catalog.PUT("/:resource/:id/children/:childId", adminAuth, h.UpdateCatalogChild)
		catalog.DELETE("/:resource/:id/children/:childId", adminAuth, h.RemoveCatalogChild)

		// Back office
		admin := api.Group("/admin")
		admin.POST("/register", h.AdminRegister)
		admin.POST("/login", h.AdminLogin)
		admin.GET("/profile", adminAuth, h.AdminProfile)
		admin.PUT("/reset-password", adminAuth, h.AdminResetPassword)
	}

	h.SetRouter(r)
	return r
}
