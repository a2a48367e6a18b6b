package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// ListVersions 获取实体版本台账.
//
//	@Summary	版本列表
//	@Tags		版本
//	@Produce	json
//	@Param		id	path		string	true	"实体 ID"
//	@Success	200	{object}	types.ListVersionsResponse
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/entities/{id}/versions [get]
func ListVersions(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.ListVersions(c.Request.Context(), user, c.Param("id"))
	if e != nil {
		respondErr(c, e, "list versions failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RestoreVersion 恢复到历史版本（正向追加新版本）.
//
//	@Summary	恢复历史版本
//	@Tags		版本
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"实体 ID"
//	@Param		body	body		types.RestoreVersionRequest	true	"目标版本"
//	@Success	200		{object}	types.MutateEntityResponse
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/api/v1/entities/{id}/versions/restore [post]
func RestoreVersion(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.RestoreVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.RestoreVersion(c.Request.Context(), user, c.Param("id"), req.VersionID)
	if e != nil {
		respondErr(c, e, "restore version failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}
