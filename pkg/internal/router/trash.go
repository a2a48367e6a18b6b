package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterTrashRoutes 注册回收站相关路由.
func RegisterTrashRoutes(g *gin.RouterGroup) {
	trashRoutes := g.Group("/trash")
	{
		trashRoutes.GET("", handle.ListTrash)    // 回收站列表
		trashRoutes.DELETE("", handle.EmptyTrash) // 清空回收站

		single := trashRoutes.Group("/:id")
		{
			single.POST("/restore", handle.RestoreTrash) // 恢复
			single.DELETE("", handle.PurgeTrash)         // 永久删除
		}
	}
}
