package types

// VersionInfo 版本台账记录的对外视图.
type VersionInfo struct {
	ID          string `json:"id"`
	EntityID    string `json:"entity_id"`
	VersionNo   int64  `json:"version_no"`
	Name        string `json:"name"`
	ParentID    string `json:"parent_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	StorageKey  string `json:"storage_key,omitempty"`
	AuthorID    string `json:"author_id"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
	CreatedAt   string `json:"created_at"`
}

// ListVersionsResponse 按版本号倒序返回实体的全部版本.
type ListVersionsResponse struct {
	EntityID string        `json:"entity_id"`
	Total    int           `json:"total"`
	Versions []VersionInfo `json:"versions"`
}

// RestoreVersionRequest 恢复到指定历史版本.
type RestoreVersionRequest struct {
	VersionID string `json:"version_id" binding:"required"`
}
