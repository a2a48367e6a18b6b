package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
)

// RegisterEntitiesRoutes 注册实体生命周期相关路由.
func RegisterEntitiesRoutes(g *gin.RouterGroup) {
	entities := g.Group("/entities")
	{
		// 创建与列表
		entities.POST("", handle.UploadDocument)        // 上传文档
		entities.POST("/container", handle.CreateContainer) // 新建容器
		entities.GET("", handle.ListEntities)           // 按层级列出

		// 单个实体操作
		single := entities.Group("/:id")
		{
			single.GET("", handle.GetEntity)
			single.DELETE("", handle.DeleteEntity) // 进回收站
			single.GET("/download", handle.DownloadDocument)
			single.PUT("/content", handle.UpdateContent)
			single.POST("/rename", handle.RenameEntity)
			single.POST("/move", handle.MoveEntity)

			// 版本台账
			versions := single.Group("/versions")
			{
				versions.GET("", handle.ListVersions)
				versions.POST("/restore", handle.RestoreVersion)
			}

			// 实体上的授权
			shares := single.Group("/shares")
			{
				shares.GET("", handle.ListGrants)
				shares.POST("", handle.ShareEntity)
				shares.DELETE("/:userId", handle.UnshareEntity)
			}
		}
	}
}
