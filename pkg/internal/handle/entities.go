package handle

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// UploadDocument 上传创建文档（multipart 表单），返回实体与版本 1.
//
//	@Summary	上传文档
//	@Tags		实体
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file		formData	file	true	"文档内容"
//	@Param		parent_id	formData	string	false	"父容器 ID，空为根"
//	@Success	201			{object}	types.CreateEntityResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	502			{object}	map[string]string
//	@Router		/api/v1/entities [post]
func UploadDocument(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.CreateDocument(c.Request.Context(), user,
		fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size, c.PostForm("parent_id"))
	if e != nil {
		respondErr(c, e, "upload document failed")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// CreateContainer 新建容器（文件夹）.
//
//	@Summary	新建容器
//	@Tags		实体
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateContainerRequest	true	"容器信息"
//	@Success	201		{object}	types.CreateEntityResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/entities/container [post]
func CreateContainer(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.CreateContainer(c.Request.Context(), user, &req)
	if e != nil {
		respondErr(c, e, "create container failed")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetEntity 获取单个实体.
//
//	@Summary	获取实体
//	@Tags		实体
//	@Produce	json
//	@Param		id	path		string	true	"实体 ID"
//	@Success	200	{object}	types.EntityInfo
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/entities/{id} [get]
func GetEntity(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.Get(c.Request.Context(), user, c.Param("id"))
	if e != nil {
		respondErr(c, e, "get entity failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListEntities 列出某层级下的实体.
//
//	@Summary	列出实体
//	@Tags		实体
//	@Produce	json
//	@Param		parent_id	query		string	false	"父容器 ID，空为根"
//	@Success	200			{object}	types.ListEntitiesResponse
//	@Failure	400			{object}	map[string]string
//	@Router		/api/v1/entities [get]
func ListEntities(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.List(c.Request.Context(), user, c.Query("parent_id"))
	if e != nil {
		respondErr(c, e, "list entities failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadDocument 下载文档当前内容.
//
//	@Summary	下载文档
//	@Tags		实体
//	@Produce	octet-stream
//	@Param		id	path	string	true	"实体 ID"
//	@Success	200
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/entities/{id}/download [get]
func DownloadDocument(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	rc, info, e := svc.Download(c.Request.Context(), user, c.Param("id"))
	if e != nil {
		respondErr(c, e, "download failed")
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name))
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, nil)
}

// UpdateContent 替换文档内容，产生新版本.
//
//	@Summary	更新文档内容
//	@Tags		实体
//	@Accept		octet-stream
//	@Produce	json
//	@Param		id			path		string	true	"实体 ID"
//	@Param		description	query		string	false	"版本描述"
//	@Success	200			{object}	types.MutateEntityResponse
//	@Failure	403			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/entities/{id}/content [put]
func UpdateContent(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var (
		body io.Reader = c.Request.Body
		size           = c.Request.ContentLength
	)

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.UpdateContent(c.Request.Context(), user, c.Param("id"),
		c.ContentType(), body, size, c.Query("description"))
	if e != nil {
		respondErr(c, e, "update content failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RenameEntity 重命名，产生新版本.
//
//	@Summary	重命名实体
//	@Tags		实体
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"实体 ID"
//	@Param		body	body		types.RenameEntityRequest	true	"新名称"
//	@Success	200		{object}	types.MutateEntityResponse
//	@Failure	403		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/entities/{id}/rename [post]
func RenameEntity(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.RenameEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.Rename(c.Request.Context(), user, c.Param("id"), &req)
	if e != nil {
		respondErr(c, e, "rename failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MoveEntity 移动到新父容器，产生新版本.
//
//	@Summary	移动实体
//	@Tags		实体
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"实体 ID"
//	@Param		body	body		types.MoveEntityRequest	true	"目标容器"
//	@Success	200		{object}	types.MutateEntityResponse
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/api/v1/entities/{id}/move [post]
func MoveEntity(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.MoveEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	resp, e := svc.Move(c.Request.Context(), user, c.Param("id"), &req)
	if e != nil {
		respondErr(c, e, "move failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteEntity 软删除，移入回收站.
//
//	@Summary	删除实体（进回收站）
//	@Tags		实体
//	@Param		id	path	string	true	"实体 ID"
//	@Success	204
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/entities/{id} [delete]
func DeleteEntity(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewEntityService(c.Request.Context())

	if e := svc.SoftDelete(c.Request.Context(), user, c.Param("id")); e != nil {
		respondErr(c, e, "soft delete failed")
		return
	}

	c.Status(http.StatusNoContent)
}
