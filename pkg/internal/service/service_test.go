package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/storage/db"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// memBlob 内存对象存储，用于在测试中替代 MinIO.
type memBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBlob() *memBlob {
	return &memBlob{data: map[string][]byte{}}
}

func (m *memBlob) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b

	return nil
}

func (m *memBlob) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memBlob) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)

	return nil
}

func (m *memBlob) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.data)
}

// newTestServiceDB 构造基于内存 sqlite 与内存 blob 的 EntityService，
// 并暴露底层 *gorm.DB 供需要直接操作数据库的测试使用.
func newTestServiceDB(t *testing.T) (*service.EntityService, *memBlob, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	blob := newMemBlob()

	return service.New(&db.Client{DB: gdb}, blob, nil), blob, gdb
}

// newTestService 同 newTestServiceDB，但只返回服务与 blob.
func newTestService(t *testing.T) (*service.EntityService, *memBlob) {
	t.Helper()

	svc, blob, _ := newTestServiceDB(t)

	return svc, blob
}

// mustUpload 上传一个文档并返回实体 ID.
func mustUpload(t *testing.T, svc *service.EntityService, user, name, content, parentID string) string {
	t.Helper()

	resp, err := svc.CreateDocument(context.Background(), user, name, "text/plain",
		strings.NewReader(content), int64(len(content)), parentID)
	if err != nil {
		t.Fatalf("create document %s: %v", name, err)
	}

	return resp.Entity.ID
}

// mustContainer 新建容器并返回实体 ID.
func mustContainer(t *testing.T, svc *service.EntityService, user, name, parentID string) string {
	t.Helper()

	resp, err := svc.CreateContainer(context.Background(), user, &types.CreateContainerRequest{
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create container %s: %v", name, err)
	}

	return resp.Entity.ID
}
