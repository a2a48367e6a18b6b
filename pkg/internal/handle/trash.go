package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
)

// ListTrash 获取回收站列表.
//
//	@Summary	回收站列表
//	@Tags		回收站
//	@Produce	json
//	@Param		page	query		int	false	"页码(默认1)"
//	@Param		size	query		int	false	"每页条数(默认50, 最大200)"
//	@Success	200		{object}	types.TrashListResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/trash [get]
func ListTrash(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.ListTrash(c.Request.Context(), user, page, size)
	if e != nil {
		respondErr(c, e, "trash list failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RestoreTrash 从回收站恢复实体.
//
//	@Summary	恢复实体
//	@Tags		回收站
//	@Produce	json
//	@Param		id	path		string	true	"实体 ID"
//	@Success	200	{object}	types.EntityInfo
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/trash/{id}/restore [post]
func RestoreTrash(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.Restore(c.Request.Context(), user, c.Param("id"))
	if e != nil {
		respondErr(c, e, "trash restore failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PurgeTrash 永久删除回收站中的实体.
//
//	@Summary	永久删除
//	@Tags		回收站
//	@Param		id	path	string	true	"实体 ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/trash/{id} [delete]
func PurgeTrash(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	if e := svc.Purge(c.Request.Context(), user, c.Param("id")); e != nil {
		respondErr(c, e, "trash purge failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// EmptyTrash 清空回收站.
//
//	@Summary	清空回收站
//	@Tags		回收站
//	@Produce	json
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/trash [delete]
func EmptyTrash(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.EmptyTrash(c.Request.Context(), user)
	if e != nil {
		respondErr(c, e, "trash empty failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}
