package handlers

import (
	"myzone/internal/auth"
	C "myzone/internal/constants"
	"myzone/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler, authService *auth.Service) {
	r.Use(middleware.Auth(authService))

	// Public routes
	r.GET("/", h.Home)
	r.GET("/profile/:username", h.ProfileView)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.GET("/login", h.LoginForm)
		auth.POST("/login", h.Login)
		auth.GET("/signup", h.SignupForm)
		auth.POST("/signup", h.Signup)
		auth.POST("/logout", h.Logout)
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/profile/timezone", h.ProfileTimezone)
	}

	// REST routes
	rest := r.Group(C.RESTPrefix)
	{
		rest.GET("/timezones", h.Timezones)
		rest.POST("/convert", middleware.RequireAPIAuth(), h.Convert)
	}
}
