package experience

import "github.com/gin-gonic/gin"

func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	pub := public.Group("/experiences")
	{
		pub.GET("/feed", h.Feed)
		pub.GET("/search", h.Search)
		pub.GET("/:id", h.Get)
		pub.GET("/:id/attendees", h.Attendees)
	}

	public.GET("/users/:id/experiences", h.ByUser)
	public.GET("/tags/:id/experiences", h.ByTag)

	priv := protected.Group("/experiences")
	{
		priv.POST("", h.Create)
		priv.GET("/favorites", h.MyFavorites)
		priv.PUT("/:id", h.Update)
		priv.DELETE("/:id", h.Delete)
		priv.POST("/:id/attend", h.Attend)
		priv.DELETE("/:id/attend", h.Unattend)
		priv.POST("/:id/kick", h.Kick)
		priv.POST("/:id/favorite", h.Favorite)
		priv.DELETE("/:id/favorite", h.Unfavorite)
	}
}
