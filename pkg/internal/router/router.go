// Package router 管理路由配置，将路径绑定到 pkg/internal/handle 中的处理器.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册全部业务路由到 /api/v1 分组.
func RegisterAPIRoutes(g *gin.RouterGroup) {
	RegisterEntitiesRoutes(g)
	RegisterSharesRoutes(g)
	RegisterTrashRoutes(g)
	RegisterStatsRoutes(g)
	RegisterHealthCheckRoute(g)
}
