// Package types 定义 HTTP 层的请求与响应结构体.
package types

// EntityInfo 实体的对外视图.
type EntityInfo struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	OwnerID     string `json:"owner_id"`
	ParentID    string `json:"parent_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	DeletedAt   string `json:"deleted_at,omitempty"`
}

// CreateContainerRequest 新建容器（文件夹）.
type CreateContainerRequest struct {
	Name     string `json:"name"      binding:"required"`
	ParentID string `json:"parent_id"`
}

// CreateEntityResponse 创建实体的响应，带上初始版本.
type CreateEntityResponse struct {
	Entity  EntityInfo  `json:"entity"`
	Version VersionInfo `json:"version"`
}

// RenameEntityRequest 重命名.
type RenameEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// MoveEntityRequest 移动到新父容器，parent_id 为空表示移动到根.
type MoveEntityRequest struct {
	ParentID string `json:"parent_id"`
}

// MutateEntityResponse 重命名/移动/内容更新等变更操作的响应.
type MutateEntityResponse struct {
	Entity  EntityInfo  `json:"entity"`
	Version VersionInfo `json:"version"`
}

// ListEntitiesResponse 列出某一层级下的实体.
type ListEntitiesResponse struct {
	Total    int          `json:"total"`
	Entities []EntityInfo `json:"entities"`
}

// StatsResponse 用户维度的存储统计.
type StatsResponse struct {
	Documents  int64 `json:"documents"`
	Containers int64 `json:"containers"`
	Trashed    int64 `json:"trashed"`
	TotalBytes int64 `json:"total_bytes"`
}
