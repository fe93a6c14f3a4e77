package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	pub := public.Group("/users")
	{
		pub.GET("/:id", h.Profile)
		pub.GET("/:id/followers", h.Followers)
		pub.GET("/:id/following", h.Following)
	}

	priv := protected.Group("/users")
	{
		priv.PUT("/:id", h.Edit)
		priv.POST("/:id/follow", h.Follow)
		priv.DELETE("/:id/follow", h.Unfollow)
	}
}
