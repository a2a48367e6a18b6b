package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/queue"
)

// appendVersion 在事务内为实体追加一条新的 current 版本：
// 版本号 = 当前最大值 + 1，清掉旧记录的 current 标志，再插入新记录.
// (entity_id, version_no) 唯一索引把并发追加竞争转化为重复键错误 -> ErrConflict.
func appendVersion(tx *gorm.DB, ent *model.Entity, authorID, description string) (*model.Version, error) {
	var maxNo int64
	if err := tx.Model(&model.Version{}).
		Where("entity_id = ?", ent.ID).
		Select("COALESCE(MAX(version_no), 0)").
		Scan(&maxNo).Error; err != nil {
		return nil, fmt.Errorf("max version for %s: %w", ent.ID, err)
	}

	if err := tx.Model(&model.Version{}).
		Where("entity_id = ? AND current = ?", ent.ID, true).
		Update("current", false).Error; err != nil {
		return nil, fmt.Errorf("clear current for %s: %w", ent.ID, err)
	}

	v := &model.Version{
		ID:          uuid.NewString(),
		VersionNo:   maxNo + 1,
		AuthorID:    authorID,
		Description: description,
		Current:     true,
	}
	v.Snapshot(ent)

	if err := tx.Create(v).Error; err != nil {
		return nil, fmt.Errorf("append version %d for %s: %w", v.VersionNo, ent.ID, translateDBErr(err))
	}

	return v, nil
}

// ListVersions 按版本号倒序返回实体的全部版本记录，需要至少读权限.
// 回收站中的实体历史仍然可读（restore 依赖它解释过去的状态）.
func (s *EntityService) ListVersions(ctx context.Context, user, entityID string) (*types.ListVersionsResponse, error) {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var ent model.Entity
	if err := dbx.Unscoped().First(&ent, "id = ?", entityID).Error; err != nil {
		return nil, translateDBErr(err)
	}

	if err := requireAccess(ctx, dbx, &ent, user, AccessRead); err != nil {
		return nil, err
	}

	var rows []model.Version
	if err := dbx.Where("entity_id = ?", entityID).
		Order("version_no DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list versions for %s: %w", entityID, err)
	}

	versions := make([]types.VersionInfo, 0, len(rows))
	for i := range rows {
		versions = append(versions, toVersionInfo(&rows[i]))
	}

	return &types.ListVersionsResponse{EntityID: entityID, Total: len(versions), Versions: versions}, nil
}

// RestoreVersion 恢复到历史版本：不改写历史，把目标快照正向覆盖到实体上，
// 并追加一条描述 "restored to vN" 的新 current 版本.
func (s *EntityService) RestoreVersion(ctx context.Context, user, entityID, versionID string) (*types.MutateEntityResponse, error) {
	var (
		ent    model.Entity
		newVer *model.Version
		fromNo int64
	)

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 实体可能在回收站：区分 "不存在" 与 "需要先恢复"
				var trashed model.Entity
				if tx.Unscoped().First(&trashed, "id = ?", entityID).Error == nil {
					return ErrConflict
				}

				return ErrNotFound
			}

			return err
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessOwner); err != nil {
			return err
		}

		var target model.Version
		if err := tx.First(&target, "id = ? AND entity_id = ?", versionID, entityID).Error; err != nil {
			return translateDBErr(err)
		}

		fromNo = target.VersionNo
		target.Apply(&ent)

		if err := tx.Save(&ent).Error; err != nil {
			return err
		}

		v, err := appendVersion(tx, &ent, user, fmt.Sprintf("restored to v%d", target.VersionNo))
		if err != nil {
			return err
		}

		newVer = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditVersionRestored(&ent, user, fromNo, newVer.VersionNo)

	return &types.MutateEntityResponse{Entity: toEntityInfo(&ent), Version: toVersionInfo(newVer)}, nil
}

// auditVersionRestored 发布 dv.version.restored 事件（尽力而为）.
func (s *EntityService) auditVersionRestored(ent *model.Entity, actor string, fromNo, newNo int64) {
	s.publish(queue.TopicVersionRestored, queue.VersionRestoredPayload{
		Entity:        entityRef(ent),
		Actor:         actor,
		FromVersionNo: fromNo,
		NewVersionNo:  newNo,
	})
}
