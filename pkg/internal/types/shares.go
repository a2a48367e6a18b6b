package types

// ShareRequest 给一组用户授权，重复授权会更新权限级别而不是叠加.
type ShareRequest struct {
	Users      []string `json:"users"      binding:"required,min=1,dive,required"`
	Permission string   `json:"permission" binding:"required,oneof=read write"`
}

// GrantInfo 单条授权的对外视图.
type GrantInfo struct {
	UserID     string `json:"user_id"`
	Permission string `json:"permission"`
	CreatedAt  string `json:"created_at"`
}

// ListGrantsResponse 实体上的全部授权.
type ListGrantsResponse struct {
	EntityID string      `json:"entity_id"`
	Grants   []GrantInfo `json:"grants"`
}

// SharedEntityInfo 共享给当前用户的实体及授权级别.
type SharedEntityInfo struct {
	Entity     EntityInfo `json:"entity"`
	Permission string     `json:"permission"`
}

// ListSharedResponse "共享给我"列表.
type ListSharedResponse struct {
	Total    int                `json:"total"`
	Entities []SharedEntityInfo `json:"entities"`
}
