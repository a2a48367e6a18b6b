package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
)

// Stats 用户维度的存量统计.
//
//	@Summary	存储统计
//	@Tags		统计
//	@Produce	json
//	@Success	200	{object}	types.StatsResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/stats [get]
func Stats(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.Stats(c.Request.Context(), user)
	if e != nil {
		respondErr(c, e, "stats failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}
