package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

func TestRenameValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "a.txt", "a", "")

	_, err := svc.Rename(ctx, owner, id, &types.RenameEntityRequest{Name: "   "})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}

	_, err = svc.Rename(ctx, owner, "no-such-id", &types.RenameEntityRequest{Name: "b.txt"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveToRootAndBack(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	folder := mustContainer(t, svc, owner, "docs", "")
	id := mustUpload(t, svc, owner, "a.txt", "a", folder)

	// 移到根
	if _, err := svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: ""}); err != nil {
		t.Fatalf("move to root: %v", err)
	}

	info, _ := svc.Get(ctx, owner, id)
	if info.ParentID != "" {
		t.Fatalf("expected root parent, got %q", info.ParentID)
	}

	// 移回容器
	if _, err := svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: folder}); err != nil {
		t.Fatalf("move back: %v", err)
	}

	info, _ = svc.Get(ctx, owner, id)
	if info.ParentID != folder {
		t.Fatalf("expected parent %q, got %q", folder, info.ParentID)
	}
}

// 把容器移入自己的子孙会形成环，必须被拒绝.
func TestMoveCycleRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a := mustContainer(t, svc, owner, "a", "")
	b := mustContainer(t, svc, owner, "b", a)
	c := mustContainer(t, svc, owner, "c", b)

	// a -> c（c 是 a 的孙子）
	_, err := svc.Move(ctx, owner, a, &types.MoveEntityRequest{ParentID: c})
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected ErrConflict for cycle, got %v", err)
	}

	// a -> a
	_, err = svc.Move(ctx, owner, a, &types.MoveEntityRequest{ParentID: a})
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected ErrConflict for self move, got %v", err)
	}

	// 失败的移动不改变父引用
	info, _ := svc.Get(ctx, owner, a)
	if info.ParentID != "" {
		t.Errorf("rejected move mutated parent: %q", info.ParentID)
	}
}

func TestMoveDestinationChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "a.txt", "a", "")
	doc := mustUpload(t, svc, owner, "b.txt", "b", "")

	// 目标是文档
	_, err := svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: doc})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for document destination, got %v", err)
	}

	// 目标不存在
	_, err = svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: "missing"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing destination, got %v", err)
	}

	// 目标在回收站：与不存在等价
	trashed := mustContainer(t, svc, owner, "gone", "")
	if err := svc.SoftDelete(ctx, owner, trashed); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	_, err = svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: trashed})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for trashed destination, got %v", err)
	}
}

func TestCreateWithInvalidParent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc := mustUpload(t, svc, owner, "a.txt", "a", "")

	// 文档不能作父级
	_, err := svc.CreateContainer(ctx, owner, &types.CreateContainerRequest{Name: "x", ParentID: doc})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// 父级不存在
	_, err = svc.CreateDocument(ctx, owner, "y.txt", "text/plain",
		strings.NewReader("y"), 1, "missing-parent")
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateContentOnContainer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	folder := mustContainer(t, svc, owner, "docs", "")

	_, err := svc.UpdateContent(ctx, owner, folder, "text/plain", strings.NewReader("x"), 1, "")
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for container content update, got %v", err)
	}
}

// 内容更新换新存储键，旧版本仍指向旧内容.
func TestUpdateContentKeepsOldBlob(t *testing.T) {
	svc, blob := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "a.txt", "first", "")
	updateContent(t, svc, owner, id, "second", "")

	ledger, _ := svc.ListVersions(ctx, owner, id)
	if ledger.Versions[0].StorageKey == ledger.Versions[1].StorageKey {
		t.Fatal("content update must allocate a fresh storage key")
	}

	if blob.len() != 2 {
		t.Fatalf("expected 2 blobs retained, got %d", blob.len())
	}
}
