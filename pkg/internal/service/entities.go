package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

// validateParent 校验父容器引用：必须存在、是容器、且不在回收站.
// 默认查询范围已排除软删除记录，回收站中的容器与不存在等价.
func validateParent(tx *gorm.DB, parentID *string) (*model.Entity, error) {
	if parentID == nil || *parentID == "" {
		return nil, nil
	}

	var parent model.Entity
	if err := tx.First(&parent, "id = ?", *parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: parent container %s does not exist or is trashed", ErrValidation, *parentID)
		}

		return nil, err
	}

	if parent.Kind != model.KindContainer {
		return nil, fmt.Errorf("%w: parent %s is not a container", ErrValidation, *parentID)
	}

	return &parent, nil
}

// normalizeParentID 把空字符串归一为 nil（根层级）.
func normalizeParentID(parentID string) *string {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return nil
	}

	return &parentID
}

// CreateDocument 上传创建文档：先写入对象存储，再在同一事务内创建实体并追加版本 1.
// 事务失败时尽力回收刚写入的 blob，保证不会留下指向未提交实体的内容.
func (s *EntityService) CreateDocument(ctx context.Context, user, name, contentType string,
	r io.Reader, size int64, parentID string) (*types.CreateEntityResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if s.blob == nil {
		return nil, fmt.Errorf("%w: blob store not configured", ErrStorage)
	}

	ent := model.Entity{
		ID:          uuid.NewString(),
		Kind:        model.KindDocument,
		Name:        name,
		OwnerID:     user,
		ParentID:    normalizeParentID(parentID),
		ContentType: contentType,
		Size:        size,
	}
	ent.StorageKey = newStorageKey(user, ent.ID)

	if err := s.blob.Put(ctx, ent.StorageKey, r, size, contentType); err != nil {
		return nil, fmt.Errorf("%w: put %s: %v", ErrStorage, ent.StorageKey, err)
	}

	var ver *model.Version

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := validateParent(tx, ent.ParentID); err != nil {
			return err
		}

		if err := tx.Create(&ent).Error; err != nil {
			return translateDBErr(err)
		}

		v, err := appendVersion(tx, &ent, user, "initial upload")
		if err != nil {
			return err
		}

		ver = v

		return nil
	})
	if err != nil {
		s.removeBlobQuietly(ctx, ent.StorageKey)
		return nil, err
	}

	s.auditEntity(queue.TopicEntityCreated, &ent, user, ver.VersionNo, ver.Description)

	return &types.CreateEntityResponse{Entity: toEntityInfo(&ent), Version: toVersionInfo(ver)}, nil
}

// CreateContainer 新建容器（文件夹），同样获得版本 1.
func (s *EntityService) CreateContainer(ctx context.Context, user string, req *types.CreateContainerRequest) (*types.CreateEntityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	ent := model.Entity{
		ID:       uuid.NewString(),
		Kind:     model.KindContainer,
		Name:     name,
		OwnerID:  user,
		ParentID: normalizeParentID(req.ParentID),
	}

	var ver *model.Version

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := validateParent(tx, ent.ParentID); err != nil {
			return err
		}

		if err := tx.Create(&ent).Error; err != nil {
			return translateDBErr(err)
		}

		v, err := appendVersion(tx, &ent, user, "created")
		if err != nil {
			return err
		}

		ver = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditEntity(queue.TopicEntityCreated, &ent, user, ver.VersionNo, ver.Description)

	return &types.CreateEntityResponse{Entity: toEntityInfo(&ent), Version: toVersionInfo(ver)}, nil
}

// Get 返回单个实体，需要至少读权限.回收站中的实体对默认读取不可见.
func (s *EntityService) Get(ctx context.Context, user, entityID string) (*types.EntityInfo, error) {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var ent model.Entity
	if err := dbx.First(&ent, "id = ?", entityID).Error; err != nil {
		return nil, translateDBErr(err)
	}

	if err := requireAccess(ctx, dbx, &ent, user, AccessRead); err != nil {
		return nil, err
	}

	info := toEntityInfo(&ent)

	return &info, nil
}

// List 列出用户在某一层级下的实体（parentID 为空表示根层级）.
// 软删除记录被默认查询范围排除.
func (s *EntityService) List(ctx context.Context, user, parentID string) (*types.ListEntitiesResponse, error) {
	if user == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidation)
	}

	dbx := s.dbc.GetDB().WithContext(ctx).Where("owner_id = ?", user)

	if pid := normalizeParentID(parentID); pid != nil {
		dbx = dbx.Where("parent_id = ?", *pid)
	} else {
		dbx = dbx.Where("parent_id IS NULL")
	}

	var rows []model.Entity
	if err := dbx.Order("kind DESC, name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}

	entities := make([]types.EntityInfo, 0, len(rows))
	for i := range rows {
		entities = append(entities, toEntityInfo(&rows[i]))
	}

	return &types.ListEntitiesResponse{Total: len(entities), Entities: entities}, nil
}

// Download 打开文档内容流，需要至少读权限.调用方负责关闭 reader.
func (s *EntityService) Download(ctx context.Context, user, entityID string) (io.ReadCloser, *types.EntityInfo, error) {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var ent model.Entity
	if err := dbx.First(&ent, "id = ?", entityID).Error; err != nil {
		return nil, nil, translateDBErr(err)
	}

	if err := requireAccess(ctx, dbx, &ent, user, AccessRead); err != nil {
		return nil, nil, err
	}

	if !ent.IsDocument() {
		return nil, nil, fmt.Errorf("%w: %s is a container, not a document", ErrValidation, entityID)
	}

	if s.blob == nil {
		return nil, nil, fmt.Errorf("%w: blob store not configured", ErrStorage)
	}

	rc, err := s.blob.Get(ctx, ent.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: get %s: %v", ErrStorage, ent.StorageKey, err)
	}

	info := toEntityInfo(&ent)

	return rc, &info, nil
}

// Stats 返回用户维度的存量统计.
func (s *EntityService) Stats(ctx context.Context, user string) (*types.StatsResponse, error) {
	dbx := s.dbc.GetDB().WithContext(ctx)

	var resp types.StatsResponse

	if err := dbx.Model(&model.Entity{}).
		Where("owner_id = ? AND kind = ?", user, model.KindDocument).
		Count(&resp.Documents).Error; err != nil {
		return nil, err
	}

	if err := dbx.Model(&model.Entity{}).
		Where("owner_id = ? AND kind = ?", user, model.KindContainer).
		Count(&resp.Containers).Error; err != nil {
		return nil, err
	}

	if err := dbx.Model(&model.Entity{}).Unscoped().
		Where("owner_id = ? AND deleted_at IS NOT NULL", user).
		Count(&resp.Trashed).Error; err != nil {
		return nil, err
	}

	if err := dbx.Model(&model.Entity{}).
		Where("owner_id = ? AND kind = ?", user, model.KindDocument).
		Select("COALESCE(SUM(size), 0)").Scan(&resp.TotalBytes).Error; err != nil {
		return nil, err
	}

	return &resp, nil
}

// removeBlobQuietly 尽力回收 blob，失败只记日志（键不会复用，残留可由后台清理）.
func (s *EntityService) removeBlobQuietly(ctx context.Context, key string) {
	if s.blob == nil || key == "" {
		return
	}

	if err := s.blob.Remove(ctx, key); err != nil {
		nlog.Logger().Warn().Err(err).Str("key", key).Msg("orphan blob cleanup failed")
	}
}
