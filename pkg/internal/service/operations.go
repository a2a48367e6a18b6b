package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/queue"
)

// Rename 重命名实体并追加一条新版本，需要写权限.
func (s *EntityService) Rename(ctx context.Context, user, entityID string, req *types.RenameEntityRequest) (*types.MutateEntityResponse, error) {
	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	var (
		ent model.Entity
		ver *model.Version
	)

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessWrite); err != nil {
			return err
		}

		oldName := ent.Name
		ent.Name = newName

		if err := tx.Save(&ent).Error; err != nil {
			return translateDBErr(err)
		}

		v, err := appendVersion(tx, &ent, user, fmt.Sprintf("renamed %q to %q", oldName, newName))
		if err != nil {
			return err
		}

		ver = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditEntity(queue.TopicEntityRenamed, &ent, user, ver.VersionNo, ver.Description)

	return &types.MutateEntityResponse{Entity: toEntityInfo(&ent), Version: toVersionInfo(ver)}, nil
}

// ensureNoCycle 沿目标容器的祖先链向上走，禁止把实体移入自身或其子孙.
// 祖先链在同一事务内读取，链长受层级深度约束.
func ensureNoCycle(tx *gorm.DB, entityID string, dst *model.Entity) error {
	for cur := dst; cur != nil; {
		if cur.ID == entityID {
			return fmt.Errorf("%w: moving %s under its own descendant", ErrConflict, entityID)
		}

		if cur.ParentID == nil {
			return nil
		}

		var parent model.Entity
		if err := tx.Unscoped().First(&parent, "id = ?", *cur.ParentID).Error; err != nil {
			return translateDBErr(err)
		}

		cur = &parent
	}

	return nil
}

// Move 把实体移动到新的父容器（parent_id 为空表示移到根），追加一条新版本.
// 需要写权限；目标必须是存在且未进回收站的容器；禁止形成环.
func (s *EntityService) Move(ctx context.Context, user, entityID string, req *types.MoveEntityRequest) (*types.MutateEntityResponse, error) {
	newParent := normalizeParentID(req.ParentID)

	var (
		ent model.Entity
		ver *model.Version
	)

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessWrite); err != nil {
			return err
		}

		if newParent != nil {
			if *newParent == entityID {
				return fmt.Errorf("%w: cannot move %s into itself", ErrConflict, entityID)
			}

			var dst model.Entity
			if err := tx.First(&dst, "id = ?", *newParent).Error; err != nil {
				// 目标不存在或已进回收站都视为不可达
				return translateDBErr(err)
			}

			if dst.Kind != model.KindContainer {
				return fmt.Errorf("%w: destination %s is not a container", ErrValidation, dst.ID)
			}

			if err := ensureNoCycle(tx, entityID, &dst); err != nil {
				return err
			}
		}

		dstRepr := "root"
		if newParent != nil {
			dstRepr = *newParent
		}

		ent.ParentID = newParent

		// Save 不会写入 nil 指针字段，移动到根需要显式置空
		if err := tx.Model(&ent).Update("parent_id", newParent).Error; err != nil {
			return translateDBErr(err)
		}

		v, err := appendVersion(tx, &ent, user, fmt.Sprintf("moved to %s", dstRepr))
		if err != nil {
			return err
		}

		ver = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditEntity(queue.TopicEntityMoved, &ent, user, ver.VersionNo, ver.Description)

	return &types.MutateEntityResponse{Entity: toEntityInfo(&ent), Version: toVersionInfo(ver)}, nil
}
