package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterSharesRoutes 注册跨实体的授权视图路由.
func RegisterSharesRoutes(g *gin.RouterGroup) {
	sharesRoutes := g.Group("/shares")
	{
		sharesRoutes.GET("", handle.ListSharedWithMe) // 共享给我的实体
	}
}
