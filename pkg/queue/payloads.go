package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// EntityRef 标识一个实体及其当时的描述性元数据.
type EntityRef struct {
	EntityID    string `json:"entity_id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	OwnerID     string `json:"owner_id"`
	ParentID    string `json:"parent_id,omitempty"`
	StorageKey  string `json:"storage_key,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// EntityEventPayload 实体生命周期事件的通用负载.
// VersionNo 为 0 表示该操作没有追加版本（授权、回收站标记翻转等）.
type EntityEventPayload struct {
	Entity EntityRef `json:"entity"`
	// Actor 发起操作的用户标识.
	Actor       string `json:"actor"`
	VersionNo   int64  `json:"version_no,omitempty"`
	Description string `json:"description,omitempty"`
}

// ShareEventPayload 授权变更事件负载.
type ShareEventPayload struct {
	Entity     EntityRef `json:"entity"`
	Actor      string    `json:"actor"`
	TargetUser string    `json:"target_user"`
	Permission string    `json:"permission,omitempty"`
}

// VersionRestoredPayload 恢复到历史版本的事件负载.
type VersionRestoredPayload struct {
	Entity        EntityRef `json:"entity"`
	Actor         string    `json:"actor"`
	FromVersionNo int64     `json:"from_version_no"`
	NewVersionNo  int64     `json:"new_version_no"`
}

// TrashBatchPayload 回收站批量操作（清空/定时清理）事件负载.
type TrashBatchPayload struct {
	Actor string `json:"actor,omitempty"`
	// Purged 被永久删除的实体数.
	Purged int `json:"purged"`
	// Before 定时清理使用的时间阈值（RFC3339），清空操作为空.
	Before string `json:"before,omitempty"`
}
