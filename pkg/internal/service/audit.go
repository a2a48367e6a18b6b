package service

import (
	"context"

	"github.com/yeisme/docvault/pkg/configs"
	"github.com/yeisme/docvault/pkg/internal/model"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

const auditProducer = "docvault"

// topicEnabled 按配置判断主题是否开启发布.未列出的主题默认开启.
func topicEnabled(topic string) bool {
	cfg := configs.GetConfig().Events
	if !cfg.Enabled {
		return false
	}

	switch topic {
	case queue.TopicEntityCreated:
		return cfg.Entity.Created
	case queue.TopicEntityContentUpdated:
		return cfg.Entity.Updated
	case queue.TopicEntityRenamed:
		return cfg.Entity.Renamed
	case queue.TopicEntityMoved:
		return cfg.Entity.Moved
	case queue.TopicEntityShared, queue.TopicEntityUnshared:
		return cfg.Entity.Shared
	case queue.TopicEntityTrashed:
		return cfg.Entity.Trashed
	case queue.TopicEntityRestored:
		return cfg.Entity.Restored
	case queue.TopicEntityPurged:
		return cfg.Entity.Purged
	case queue.TopicVersionRestored, queue.TopicVersionAppended:
		return cfg.Entity.VersionOps
	default:
		return true
	}
}

// entityRef 构造事件负载中的实体引用.
func entityRef(e *model.Entity) queue.EntityRef {
	ref := queue.EntityRef{
		EntityID:    e.ID,
		Kind:        string(e.Kind),
		Name:        e.Name,
		OwnerID:     e.OwnerID,
		StorageKey:  e.StorageKey,
		Size:        e.Size,
		ContentType: e.ContentType,
	}

	if e.ParentID != nil {
		ref.ParentID = *e.ParentID
	}

	return ref
}

// publish 异步发布审计事件.发布是尽力而为的：MQ 未配置直接跳过，
// 发布失败只记日志，绝不把错误传回生命周期操作.
func (s *EntityService) publish(topic string, payload any) {
	if s.mqc == nil || !topicEnabled(topic) {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				nlog.Logger().Warn().Interface("panic", r).Str("topic", topic).Msg("audit publish panicked")
			}
		}()

		msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer(auditProducer))
		if err != nil {
			nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("audit encode failed")
			return
		}

		if err := s.mqc.Publish(context.Background(), topic, msg); err != nil {
			nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("audit publish failed")
		}
	}()
}

// auditEntity 发布一条实体生命周期事件.
func (s *EntityService) auditEntity(topic string, ent *model.Entity, actor string, versionNo int64, description string) {
	s.publish(topic, queue.EntityEventPayload{
		Entity:      entityRef(ent),
		Actor:       actor,
		VersionNo:   versionNo,
		Description: description,
	})
}

// auditShare 发布一条授权变更事件.
func (s *EntityService) auditShare(topic string, ent *model.Entity, actor, target string, perm model.Permission) {
	s.publish(topic, queue.ShareEventPayload{
		Entity:     entityRef(ent),
		Actor:      actor,
		TargetUser: target,
		Permission: string(perm),
	})
}
