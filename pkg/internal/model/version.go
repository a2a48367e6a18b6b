package model

import "time"

// Version 版本台账记录：实体在某一时刻的描述性元数据快照.
// 仅追加，唯一允许的原地修改是翻转 Current 标志.
//
// (entity_id, version_no) 上的复合唯一索引保证并发追加时
// 版本号分配的竞争在数据库层面被拒绝（重复键 -> 冲突）.
type Version struct {
	ID        string     `gorm:"primaryKey;size:36"                             json:"id"`
	EntityID  string     `gorm:"size:36;index;uniqueIndex:idx_entity_version"   json:"entity_id"`
	Kind      EntityKind `gorm:"size:16"                                        json:"kind"`
	VersionNo int64      `gorm:"uniqueIndex:idx_entity_version"                 json:"version_no"`

	// 快照字段.
	Name        string  `gorm:"size:512"  json:"name"`
	ParentID    *string `gorm:"size:36"   json:"parent_id,omitempty"`
	ContentType string  `gorm:"size:255"  json:"content_type,omitempty"`
	Size        int64   `                 json:"size"`
	StorageKey  string  `gorm:"size:1024" json:"storage_key,omitempty"`

	AuthorID    string `gorm:"size:255"  json:"author_id"`
	Description string `gorm:"type:text" json:"description"`
	// Current 每个实体有且仅有一条 current=true 的记录.
	Current   bool      `gorm:"index" json:"current"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot 把实体当前的可变描述字段拷贝到版本记录中.
func (v *Version) Snapshot(e *Entity) {
	v.EntityID = e.ID
	v.Kind = e.Kind
	v.Name = e.Name
	v.ParentID = e.ParentID
	v.ContentType = e.ContentType
	v.Size = e.Size
	v.StorageKey = e.StorageKey
}

// Apply 把版本快照回写到实体（restore-to-version 的正向覆盖）.
// 不回写 ParentID：恢复历史版本还原"文件是什么"，不搬动其当前位置.
func (v *Version) Apply(e *Entity) {
	e.Name = v.Name
	e.ContentType = v.ContentType
	e.Size = v.Size
	e.StorageKey = v.StorageKey
}
