package comment

import "github.com/gin-gonic/gin"

func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	public.GET("/experiences/:id/comments", h.ByExperience)

	protected.POST("/experiences/:id/comments", h.Add)

	priv := protected.Group("/comments")
	{
		priv.PUT("/:id", h.Edit)
		priv.DELETE("/:id", h.Delete)
		priv.POST("/:id/like", h.Like)
		priv.DELETE("/:id/like", h.Unlike)
	}
}
