// Package model 定义实体、版本台账与授权的数据库模型.
package model

import (
	"time"

	"gorm.io/gorm"
)

// EntityKind 实体种类：文档（携带内容）或容器（可以嵌套其它实体）.
type EntityKind string

const (
	KindDocument  EntityKind = "document"
	KindContainer EntityKind = "container"
)

// Entity 实体主记录，文档与容器共用一张表（kind 区分）.
// DeletedAt 即软删除标记：GORM 默认查询自动排除回收站内的记录，
// 回收站视图通过 Unscoped 读取.
type Entity struct {
	ID   string     `gorm:"primaryKey;size:36"  json:"id"`
	Kind EntityKind `gorm:"size:16;index"       json:"kind"`
	Name string     `gorm:"size:512;index"      json:"name"`
	// OwnerID 创建后不可变更；owner 拥有全部权限，不体现在 grants 表中.
	OwnerID string `gorm:"size:255;index" json:"owner_id"`
	// ParentID 为空表示根层级.
	ParentID *string `gorm:"size:36;index" json:"parent_id,omitempty"`
	// 以下仅对文档有意义.
	ContentType string `gorm:"size:255"  json:"content_type,omitempty"`
	Size        int64  `                 json:"size"`
	StorageKey  string `gorm:"size:1024" json:"storage_key,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// IsDocument 判断是否文档实体.
func (e *Entity) IsDocument() bool { return e.Kind == KindDocument }

// Trashed 判断是否处于回收站.
func (e *Entity) Trashed() bool { return e.DeletedAt.Valid }
