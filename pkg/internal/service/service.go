// Package service 实现实体生命周期与版本台账的业务逻辑.
//
// 所有状态变更都遵循同一套约束：
//   - 权限先行：权限不足的请求不产生任何副作用
//   - 实体变更与版本追加在同一个数据库事务内提交
//   - 对象存储只追加，存储键永不复用
//   - 审计事件在变更成功后异步发布，失败只记日志
package service

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid"

	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/storage/db"
	"github.com/yeisme/docvault/pkg/internal/storage/mq"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// 全局单例的 ULID 熵源，使用单调递增策略，确保同一毫秒内生成的存储键排序稳定.
var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// BlobStore 抽象对象存储：追加写入、读取、删除.
// 生产实现是 MinIO 客户端包装（pkg/internal/storage/s3），测试用内存实现.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// EntityService 聚合实体生命周期操作所需的存储依赖.
type EntityService struct {
	dbc  *db.Client
	blob BlobStore
	mqc  *mq.Client
}

// New 使用显式依赖构造 EntityService，便于测试与自定义装配.
// blob 与 mqc 允许为 nil：无 blob 时内容操作返回存储错误，无 mqc 时跳过审计发布.
func New(dbc *db.Client, blob BlobStore, mqc *mq.Client) *EntityService {
	return &EntityService{dbc: dbc, blob: blob, mqc: mqc}
}

// NewEntityService 从 context 中装配依赖（请求路径使用 StorageMiddleware 注入的 Manager）.
func NewEntityService(c context.Context) *EntityService {
	svc := &EntityService{
		dbc: ctxPkg.GetDBClient(c),
		mqc: ctxPkg.GetMQClient(c),
	}

	if s3c := ctxPkg.GetS3Client(c); s3c != nil {
		svc.blob = s3c
	}

	if svc.dbc == nil {
		nlog.Logger().Warn().Msg("DB client not initialized, entity operations will fail")
	}

	return svc
}

// newStorageKey 生成形如 {owner}/{entityID}/{ULID} 的存储键.
// ULID 部分保证键永不复用，旧版本引用的内容因此不会被覆盖.
func newStorageKey(ownerID, entityID string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), ulidEntropy)
	return fmt.Sprintf("%s/%s/%s", ownerID, entityID, id.String())
}

// toEntityInfo 转换为对外视图.
func toEntityInfo(e *model.Entity) types.EntityInfo {
	info := types.EntityInfo{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Name:        e.Name,
		OwnerID:     e.OwnerID,
		ContentType: e.ContentType,
		Size:        e.Size,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if e.ParentID != nil {
		info.ParentID = *e.ParentID
	}

	if e.DeletedAt.Valid {
		info.DeletedAt = e.DeletedAt.Time.UTC().Format(time.RFC3339)
	}

	return info
}

// toVersionInfo 转换为对外视图.
func toVersionInfo(v *model.Version) types.VersionInfo {
	info := types.VersionInfo{
		ID:          v.ID,
		EntityID:    v.EntityID,
		VersionNo:   v.VersionNo,
		Name:        v.Name,
		ContentType: v.ContentType,
		Size:        v.Size,
		StorageKey:  v.StorageKey,
		AuthorID:    v.AuthorID,
		Description: v.Description,
		Current:     v.Current,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}

	if v.ParentID != nil {
		info.ParentID = *v.ParentID
	}

	return info
}
