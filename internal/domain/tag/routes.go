package tag

import "github.com/gin-gonic/gin"

func RegisterRoutes(public *gin.RouterGroup, h *Handler) {
	pub := public.Group("/tags")
	{
		pub.GET("", h.List)
		pub.GET("/:id", h.Get)
	}
}
