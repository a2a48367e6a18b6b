package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// ShareEntity 给一组用户授权.
//
//	@Summary	授权实体
//	@Tags		授权
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"实体 ID"
//	@Param		body	body		types.ShareRequest	true	"授权目标与级别"
//	@Success	200		{object}	types.ListGrantsResponse
//	@Failure	403		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/entities/{id}/shares [post]
func ShareEntity(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.Share(c.Request.Context(), user, c.Param("id"), &req)
	if e != nil {
		respondErr(c, e, "share failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UnshareEntity 撤销某用户的授权（幂等）.
//
//	@Summary	撤销授权
//	@Tags		授权
//	@Param		id		path	string	true	"实体 ID"
//	@Param		userId	path	string	true	"目标用户"
//	@Success	204
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/entities/{id}/shares/{userId} [delete]
func UnshareEntity(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	if e := svc.Unshare(c.Request.Context(), user, c.Param("id"), c.Param("userId")); e != nil {
		respondErr(c, e, "unshare failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListGrants 查看实体上的授权.
//
//	@Summary	授权列表
//	@Tags		授权
//	@Produce	json
//	@Param		id	path		string	true	"实体 ID"
//	@Success	200	{object}	types.ListGrantsResponse
//	@Failure	403	{object}	map[string]string
//	@Router		/api/v1/entities/{id}/shares [get]
func ListGrants(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.ListGrants(c.Request.Context(), user, c.Param("id"))
	if e != nil {
		respondErr(c, e, "list grants failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSharedWithMe 查看共享给当前用户的实体.
//
//	@Summary	共享给我
//	@Tags		授权
//	@Produce	json
//	@Success	200	{object}	types.ListSharedResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/shares [get]
func ListSharedWithMe(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.ListSharedWithMe(c.Request.Context(), user)
	if e != nil {
		respondErr(c, e, "list shared failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}
