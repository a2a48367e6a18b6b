package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/middleware"
)

// Access 有效访问级别，数值越大权限越高.
type Access int

const (
	AccessNone Access = iota
	AccessRead
	AccessWrite
	AccessOwner
)

// String 返回访问级别的字符串表示.
func (a Access) String() string {
	switch a {
	case AccessOwner:
		return "owner"
	case AccessWrite:
		return "write"
	case AccessRead:
		return "read"
	default:
		return "none"
	}
}

// EffectiveAccess 计算用户对实体的有效访问级别.
// 判定顺序：管理员角色（粗粒度越权，不是授权记录）-> 所有权 -> 授权记录 -> none.
func EffectiveAccess(ctx context.Context, tx *gorm.DB, ent *model.Entity, userID string) (Access, error) {
	if middleware.RoleFromContext(ctx) == middleware.RoleAdmin {
		return AccessOwner, nil
	}

	if ent.OwnerID == userID {
		return AccessOwner, nil
	}

	var grant model.Grant

	err := tx.Where("entity_id = ? AND user_id = ?", ent.ID, userID).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AccessNone, nil
	}

	if err != nil {
		return AccessNone, err
	}

	if grant.Permission == model.PermissionWrite {
		return AccessWrite, nil
	}

	return AccessRead, nil
}

// requireAccess 校验最小访问级别，不满足时返回 ErrForbidden.
func requireAccess(ctx context.Context, tx *gorm.DB, ent *model.Entity, userID string, min Access) error {
	got, err := EffectiveAccess(ctx, tx, ent, userID)
	if err != nil {
		return err
	}

	if got < min {
		return ErrForbidden
	}

	return nil
}
