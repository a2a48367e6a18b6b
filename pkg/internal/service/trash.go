package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

// 单次永久删除时并发回收 blob 的上限.
const purgeBlobWorkers = 4

// SoftDelete 把实体移入回收站（翻转软删除标记），需要写权限.
// 不追加版本：回收站是可见性状态，不是实体内容的变化.
func (s *EntityService) SoftDelete(ctx context.Context, user, entityID string) error {
	var ent model.Entity

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessWrite); err != nil {
			return err
		}

		// gorm.DeletedAt 模型上的 Delete 即软删除
		return tx.Delete(&ent).Error
	})
	if err != nil {
		return err
	}

	s.auditEntity(queue.TopicEntityTrashed, &ent, user, 0, "")

	return nil
}

// Restore 把实体移出回收站.只有所有者（或管理员）可以恢复；
// 实体不在回收站时返回 ErrConflict，完全不存在时返回 ErrNotFound.
// 不追加版本.
func (s *EntityService) Restore(ctx context.Context, user, entityID string) (*types.EntityInfo, error) {
	var ent model.Entity

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessOwner); err != nil {
			return err
		}

		if !ent.Trashed() {
			return fmt.Errorf("%w: %s is not in trash", ErrConflict, entityID)
		}

		if err := tx.Unscoped().Model(&ent).Update("deleted_at", nil).Error; err != nil {
			return err
		}

		ent.DeletedAt = gorm.DeletedAt{}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditEntity(queue.TopicEntityRestored, &ent, user, 0, "")

	info := toEntityInfo(&ent)

	return &info, nil
}

// Purge 永久删除回收站中的实体：并发回收全部版本指向的 blob，
// 再硬删除实体与授权记录.版本台账保留为孤儿记录，仅供审计追溯.
// 两步门：实体必须已在回收站，否则 ErrConflict.
func (s *EntityService) Purge(ctx context.Context, user, entityID string) error {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var ent model.Entity
	if err := dbx.Unscoped().First(&ent, "id = ?", entityID).Error; err != nil {
		return translateDBErr(err)
	}

	if err := requireAccess(ctx, dbx, &ent, user, AccessOwner); err != nil {
		return err
	}

	if !ent.Trashed() {
		return fmt.Errorf("%w: %s must be trashed before purge", ErrConflict, entityID)
	}

	if err := s.purgeBlobs(ctx, &ent); err != nil {
		return err
	}

	err := dbx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_id = ?", entityID).Delete(&model.Grant{}).Error; err != nil {
			return err
		}

		// 子实体重挂到根，避免留下悬挂的父引用
		if ent.Kind == model.KindContainer {
			if err := tx.Model(&model.Entity{}).Unscoped().
				Where("parent_id = ?", entityID).
				Update("parent_id", nil).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&ent).Error
	})
	if err != nil {
		return err
	}

	s.auditEntity(queue.TopicEntityPurged, &ent, user, 0, "")

	return nil
}

// purgeBlobs 并发回收实体全部版本引用过的存储键.键去重后删除，
// 任一删除失败即中止：不在内容还可能残留时硬删除数据库记录.
func (s *EntityService) purgeBlobs(ctx context.Context, ent *model.Entity) error {
	if !ent.IsDocument() || s.blob == nil {
		return nil
	}

	var keys []string
	if err := s.dbc.GetDB().WithContext(ctx).Model(&model.Version{}).
		Where("entity_id = ? AND storage_key <> ''", ent.ID).
		Distinct("storage_key").Pluck("storage_key", &keys).Error; err != nil {
		return fmt.Errorf("collect storage keys for %s: %w", ent.ID, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(purgeBlobWorkers)

	for _, key := range keys {
		g.Go(func() error {
			if err := s.blob.Remove(gctx, key); err != nil {
				return fmt.Errorf("%w: remove %s: %v", ErrStorage, key, err)
			}

			return nil
		})
	}

	return g.Wait()
}

// ListTrash 分页列出用户回收站中的实体，按删除时间倒序.
func (s *EntityService) ListTrash(ctx context.Context, user string, page, size int) (*types.TrashListResponse, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 200 {
		size = 50
	}

	dbx := s.dbc.GetDB().WithContext(ctx).Model(&model.Entity{}).Unscoped().
		Where("owner_id = ? AND deleted_at IS NOT NULL", user)

	var total int64
	if err := dbx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count trash: %w", err)
	}

	var rows []model.Entity
	if err := dbx.Order("deleted_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}

	entities := make([]types.EntityInfo, 0, len(rows))
	for i := range rows {
		entities = append(entities, toEntityInfo(&rows[i]))
	}

	return &types.TrashListResponse{Total: int(total), Page: page, Size: size, Entities: entities}, nil
}

// EmptyTrash 永久删除用户回收站中的全部实体，返回成功删除的数量.
// 逐个走 Purge 流程，单个失败记日志后继续.
func (s *EntityService) EmptyTrash(ctx context.Context, user string) (*types.TrashActionResponse, error) {
	var rows []model.Entity
	if err := s.dbc.GetDB().WithContext(ctx).Unscoped().
		Where("owner_id = ? AND deleted_at IS NOT NULL", user).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list trash for empty: %w", err)
	}

	purged := 0

	for i := range rows {
		if err := s.Purge(ctx, user, rows[i].ID); err != nil {
			nlog.Logger().Warn().Err(err).Str("entity", rows[i].ID).Msg("empty trash: purge failed")
			continue
		}

		purged++
	}

	s.publish(queue.TopicTrashEmptied, queue.TrashBatchPayload{Actor: user, Purged: purged})

	return &types.TrashActionResponse{Affected: purged}, nil
}

// AutoClean 永久删除 before 之前进入回收站的实体（跨所有用户），供定时任务调用.
// 调用方应以管理员身份注入 context（middleware.WithRole）.
func (s *EntityService) AutoClean(ctx context.Context, before time.Time) (int, error) {
	var rows []model.Entity
	if err := s.dbc.GetDB().WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("list expired trash: %w", err)
	}

	purged := 0

	for i := range rows {
		if err := s.Purge(ctx, rows[i].OwnerID, rows[i].ID); err != nil {
			nlog.Logger().Warn().Err(err).Str("entity", rows[i].ID).Msg("trash autoclean: purge failed")
			continue
		}

		purged++
	}

	if purged > 0 {
		s.publish(queue.TopicTrashCleaned, queue.TrashBatchPayload{
			Purged: purged,
			Before: before.UTC().Format(time.RFC3339),
		})
	}

	return purged, nil
}
