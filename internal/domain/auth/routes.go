package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the auth endpoints. Register, login and current-user
// stay on the public group (current-user answers anonymously); logout and the
// credential changes require a session.
func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	pub := public.Group("/auth")
	{
		pub.POST("/register", h.Register)
		pub.POST("/login", h.Login)
		pub.GET("/current-user", h.CurrentUser)
	}

	priv := protected.Group("/auth")
	{
		priv.POST("/logout", h.Logout)
		priv.POST("/change-email", h.ChangeEmail)
		priv.POST("/change-password", h.ChangePassword)
	}
}
