package service

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/queue"
)

// UpdateContent 替换文档内容：写入新存储键，在同一事务内更新实体并追加版本.
// 旧版本仍然指向旧键，内容因此可以按版本追溯.需要写权限，容器无内容可更新.
func (s *EntityService) UpdateContent(ctx context.Context, user, entityID, contentType string,
	r io.Reader, size int64, description string) (*types.MutateEntityResponse, error) {
	if s.blob == nil {
		return nil, fmt.Errorf("%w: blob store not configured", ErrStorage)
	}

	dbx := s.dbc.GetDB().WithContext(ctx)

	// 先做只读预检，避免权限不足时白写一个 blob
	var ent model.Entity
	if err := dbx.First(&ent, "id = ?", entityID).Error; err != nil {
		return nil, translateDBErr(err)
	}

	if err := requireAccess(ctx, dbx, &ent, user, AccessWrite); err != nil {
		return nil, err
	}

	if !ent.IsDocument() {
		return nil, fmt.Errorf("%w: %s is a container and has no content", ErrValidation, entityID)
	}

	newKey := newStorageKey(ent.OwnerID, ent.ID)
	if err := s.blob.Put(ctx, newKey, r, size, contentType); err != nil {
		return nil, fmt.Errorf("%w: put %s: %v", ErrStorage, newKey, err)
	}

	if description == "" {
		description = "content updated"
	}

	var ver *model.Version

	err := dbx.Transaction(func(tx *gorm.DB) error {
		// 事务内重读并复核权限，预检结果可能已经过期
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessWrite); err != nil {
			return err
		}

		ent.StorageKey = newKey
		ent.ContentType = contentType
		ent.Size = size

		if err := tx.Save(&ent).Error; err != nil {
			return translateDBErr(err)
		}

		v, err := appendVersion(tx, &ent, user, description)
		if err != nil {
			return err
		}

		ver = v

		return nil
	})
	if err != nil {
		s.removeBlobQuietly(ctx, newKey)
		return nil, err
	}

	s.auditEntity(queue.TopicEntityContentUpdated, &ent, user, ver.VersionNo, ver.Description)

	return &types.MutateEntityResponse{Entity: toEntityInfo(&ent), Version: toVersionInfo(ver)}, nil
}
