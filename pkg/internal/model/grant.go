package model

import "time"

// Permission 授权级别，owner 不入表（所有权单独判定且优先）.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// Valid 校验授权级别取值.
func (p Permission) Valid() bool {
	return p == PermissionRead || p == PermissionWrite
}

// Grant 共享授权：每个 (entity, user) 至多一条记录，重复授权走 upsert.
type Grant struct {
	ID         uint       `gorm:"primaryKey"                                 json:"-"`
	EntityID   string     `gorm:"size:36;index;uniqueIndex:idx_entity_user"  json:"entity_id"`
	UserID     string     `gorm:"size:255;index;uniqueIndex:idx_entity_user" json:"user_id"`
	Permission Permission `gorm:"size:16"                                    json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// All 返回需要迁移的全部模型，供存储初始化时 AutoMigrate.
func All() []any {
	return []any{&Entity{}, &Version{}, &Grant{}}
}
