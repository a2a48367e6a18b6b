package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/queue"
)

// Share 给一组用户授权读或写.只有所有者（或管理员）可以授权.
// 对同一用户重复授权按 (entity_id, user_id) 唯一键 upsert，更新权限级别而不是叠加记录.
// 对所有者自身的授权请求直接跳过：所有权不靠授权记录表达.
// 授权不追加版本：它不改变实体是什么，只改变谁能看到它.
func (s *EntityService) Share(ctx context.Context, user, entityID string, req *types.ShareRequest) (*types.ListGrantsResponse, error) {
	perm := model.Permission(req.Permission)
	if !perm.Valid() {
		return nil, fmt.Errorf("%w: permission must be read or write", ErrValidation)
	}

	var ent model.Entity

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessOwner); err != nil {
			return err
		}

		for _, target := range req.Users {
			if target == ent.OwnerID {
				continue
			}

			grant := model.Grant{
				EntityID:   entityID,
				UserID:     target,
				Permission: perm,
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entity_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"permission", "updated_at"}),
			}).Create(&grant).Error; err != nil {
				return translateDBErr(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, target := range req.Users {
		if target == ent.OwnerID {
			continue
		}

		s.auditShare(queue.TopicEntityShared, &ent, user, target, perm)
	}

	return s.ListGrants(ctx, user, entityID)
}

// Unshare 移除某用户在实体上的授权.幂等：目标用户本来就没有授权时同样成功.
func (s *EntityService) Unshare(ctx context.Context, user, entityID, targetUser string) error {
	var ent model.Entity

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ent, "id = ?", entityID).Error; err != nil {
			return translateDBErr(err)
		}

		if err := requireAccess(ctx, tx, &ent, user, AccessOwner); err != nil {
			return err
		}

		return tx.Where("entity_id = ? AND user_id = ?", entityID, targetUser).
			Delete(&model.Grant{}).Error
	})
	if err != nil {
		return err
	}

	s.auditShare(queue.TopicEntityUnshared, &ent, user, targetUser, "")

	return nil
}

// ListGrants 列出实体上的全部授权，只有所有者（或管理员）可见.
func (s *EntityService) ListGrants(ctx context.Context, user, entityID string) (*types.ListGrantsResponse, error) {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var ent model.Entity
	if err := dbx.First(&ent, "id = ?", entityID).Error; err != nil {
		return nil, translateDBErr(err)
	}

	if err := requireAccess(ctx, dbx, &ent, user, AccessOwner); err != nil {
		return nil, err
	}

	var rows []model.Grant
	if err := dbx.Where("entity_id = ?", entityID).
		Order("user_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list grants for %s: %w", entityID, err)
	}

	grants := make([]types.GrantInfo, 0, len(rows))
	for _, g := range rows {
		grants = append(grants, types.GrantInfo{
			UserID:     g.UserID,
			Permission: string(g.Permission),
			CreatedAt:  g.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return &types.ListGrantsResponse{EntityID: entityID, Grants: grants}, nil
}

// ListSharedWithMe 列出共享给当前用户且未进回收站的实体.
func (s *EntityService) ListSharedWithMe(ctx context.Context, user string) (*types.ListSharedResponse, error) {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var grants []model.Grant
	if err := dbx.Where("user_id = ?", user).Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("list shared entities: %w", err)
	}

	shared := make([]types.SharedEntityInfo, 0, len(grants))

	for _, g := range grants {
		var ent model.Entity
		// 默认查询范围排除回收站；实体已被彻底删除时授权成为悬挂记录，跳过即可
		if err := dbx.First(&ent, "id = ?", g.EntityID).Error; err != nil {
			continue
		}

		shared = append(shared, types.SharedEntityInfo{
			Entity:     toEntityInfo(&ent),
			Permission: string(g.Permission),
		})
	}

	return &types.ListSharedResponse{Total: len(shared), Entities: shared}, nil
}
