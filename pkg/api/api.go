// Package api 汇总对外 HTTP 接口的注册入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/router"
)

// RegisterGroup 注册实体生命周期相关的路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterAPIRoutes(e.Group("/api/v1"))

	return e
}
