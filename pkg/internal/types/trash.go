package types

// TrashListResponse 回收站分页列表.
type TrashListResponse struct {
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	Size     int          `json:"size"`
	Entities []EntityInfo `json:"entities"`
}

// TrashActionResponse 回收站操作（恢复/永久删除/清空）的影响行数.
type TrashActionResponse struct {
	Affected int `json:"affected"`
}
