package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// 回收站中的实体从默认视图消失，但没有被真正删除.
func TestSoftDeleteHidesEntity(t *testing.T) {
	svc, blob := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "content", "")

	if err := svc.SoftDelete(ctx, owner, id); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := svc.Get(ctx, owner, id); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("get trashed entity: expected ErrNotFound, got %v", err)
	}

	list, err := svc.List(ctx, owner, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if list.Total != 0 {
		t.Errorf("trashed entity still listed: %+v", list.Entities)
	}

	// blob 原样保留，等待恢复或永久删除
	if blob.len() != 1 {
		t.Errorf("soft delete must not touch blobs, have %d", blob.len())
	}
}

func TestRestoreFromTrash(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "content", "")

	if err := svc.SoftDelete(ctx, owner, id); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	info, err := svc.Restore(ctx, owner, id)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if info.ID != id {
		t.Fatalf("restored wrong entity: %s", info.ID)
	}

	if _, err := svc.Get(ctx, owner, id); err != nil {
		t.Errorf("get after restore: %v", err)
	}

	// 进出回收站都不追加版本
	ledger, err := svc.ListVersions(ctx, owner, id)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}

	if ledger.Total != 1 {
		t.Errorf("trash round trip appended versions: %d", ledger.Total)
	}

	// 没进回收站的实体不能恢复
	if _, err := svc.Restore(ctx, owner, id); !errors.Is(err, service.ErrConflict) {
		t.Errorf("restore live entity: expected ErrConflict, got %v", err)
	}
}

// 永久删除的两步门：必须先进回收站.
func TestPurgeRequiresTrash(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "content", "")

	if err := svc.Purge(ctx, owner, id); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("purge live entity: expected ErrConflict, got %v", err)
	}
}

// 永久删除回收全部版本的 blob，包括历史版本的.
func TestPurgeRemovesAllVersionBlobs(t *testing.T) {
	svc, blob := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "v1", "")
	updateContent(t, svc, owner, id, "v2", "")
	updateContent(t, svc, owner, id, "v3", "")

	if blob.len() != 3 {
		t.Fatalf("expected 3 blobs before purge, got %d", blob.len())
	}

	if err := svc.SoftDelete(ctx, owner, id); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if err := svc.Purge(ctx, owner, id); err != nil {
		t.Fatalf("purge: %v", err)
	}

	if blob.len() != 0 {
		t.Errorf("expected all blobs removed, have %d", blob.len())
	}

	if _, err := svc.Get(ctx, owner, id); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("get purged entity: expected ErrNotFound, got %v", err)
	}

	// 回收站里也不再出现
	trash, err := svc.ListTrash(ctx, owner, 1, 50)
	if err != nil {
		t.Fatalf("list trash: %v", err)
	}

	if trash.Total != 0 {
		t.Errorf("purged entity still in trash: %+v", trash.Entities)
	}
}

// 永久删除容器时其子实体重挂到根，不留悬挂的父引用.
func TestPurgeContainerReparentsChildren(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	folder := mustContainer(t, svc, owner, "projects", "")
	child := mustUpload(t, svc, owner, "plan.txt", "plan", folder)

	if err := svc.SoftDelete(ctx, owner, folder); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if err := svc.Purge(ctx, owner, folder); err != nil {
		t.Fatalf("purge: %v", err)
	}

	info, err := svc.Get(ctx, owner, child)
	if err != nil {
		t.Fatalf("get child after purge: %v", err)
	}

	if info.ParentID != "" {
		t.Fatalf("child still points at purged container: %q", info.ParentID)
	}

	// 根列表能看到孤儿，且它仍可正常操作（祖先链上没有死引用）
	root, err := svc.List(ctx, owner, "")
	if err != nil {
		t.Fatalf("list root: %v", err)
	}

	found := false

	for _, e := range root.Entities {
		if e.ID == child {
			found = true
		}
	}

	if !found {
		t.Fatal("child not listed at root after container purge")
	}

	dst := mustContainer(t, svc, owner, "archive", "")
	if _, err := svc.Move(ctx, owner, child, &types.MoveEntityRequest{ParentID: dst}); err != nil {
		t.Errorf("move reparented child: %v", err)
	}
}

func TestListTrashPaging(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		id := mustUpload(t, svc, owner, name, name, "")
		if err := svc.SoftDelete(ctx, owner, id); err != nil {
			t.Fatalf("soft delete %s: %v", name, err)
		}
	}

	page1, err := svc.ListTrash(ctx, owner, 1, 2)
	if err != nil {
		t.Fatalf("list trash page 1: %v", err)
	}

	if page1.Total != 3 || len(page1.Entities) != 2 {
		t.Fatalf("page 1: total %d, items %d", page1.Total, len(page1.Entities))
	}

	page2, err := svc.ListTrash(ctx, owner, 2, 2)
	if err != nil {
		t.Fatalf("list trash page 2: %v", err)
	}

	if len(page2.Entities) != 1 {
		t.Fatalf("page 2: expected 1 item, got %d", len(page2.Entities))
	}

	// 其他用户的回收站互不可见
	other, err := svc.ListTrash(ctx, "other@example.com", 1, 50)
	if err != nil {
		t.Fatalf("list other trash: %v", err)
	}

	if other.Total != 0 {
		t.Errorf("trash leaked across users: %d", other.Total)
	}
}

func TestEmptyTrash(t *testing.T) {
	svc, blob := newTestService(t)
	ctx := context.Background()

	keep := mustUpload(t, svc, owner, "keep.txt", "keep", "")

	for _, name := range []string{"a.txt", "b.txt"} {
		id := mustUpload(t, svc, owner, name, name, "")
		if err := svc.SoftDelete(ctx, owner, id); err != nil {
			t.Fatalf("soft delete %s: %v", name, err)
		}
	}

	resp, err := svc.EmptyTrash(ctx, owner)
	if err != nil {
		t.Fatalf("empty trash: %v", err)
	}

	if resp.Affected != 2 {
		t.Fatalf("expected 2 purged, got %d", resp.Affected)
	}

	if blob.len() != 1 {
		t.Errorf("expected only the live blob left, have %d", blob.len())
	}

	if _, err := svc.Get(ctx, owner, keep); err != nil {
		t.Errorf("live entity affected by empty trash: %v", err)
	}
}

// 定时清理按删除时间的截止点跨用户回收.
func TestAutoCleanCutoff(t *testing.T) {
	svc, blob := newTestService(t)
	ctx := context.Background()

	a := mustUpload(t, svc, owner, "a.txt", "a", "")
	b := mustUpload(t, svc, "dave@example.com", "b.txt", "b", "")

	for _, pair := range []struct{ user, id string }{
		{owner, a},
		{"dave@example.com", b},
	} {
		if err := svc.SoftDelete(ctx, pair.user, pair.id); err != nil {
			t.Fatalf("soft delete: %v", err)
		}
	}

	// 截止点在过去：什么都不清
	purged, err := svc.AutoClean(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("autoclean (past cutoff): %v", err)
	}

	if purged != 0 {
		t.Fatalf("expected nothing purged before cutoff, got %d", purged)
	}

	// 截止点在未来：两个用户的都清掉
	purged, err = svc.AutoClean(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("autoclean: %v", err)
	}

	if purged != 2 {
		t.Fatalf("expected 2 purged, got %d", purged)
	}

	if blob.len() != 0 {
		t.Errorf("expected no blobs left, have %d", blob.len())
	}
}
