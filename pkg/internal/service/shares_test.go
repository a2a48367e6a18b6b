package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/middleware"
)

const (
	reader = "bob@example.com"
	writer = "carol@example.com"
)

func mustShare(t *testing.T, svc *service.EntityService, ownerUser, id, target, perm string) {
	t.Helper()

	_, err := svc.Share(context.Background(), ownerUser, id, &types.ShareRequest{
		Users:      []string{target},
		Permission: perm,
	})
	if err != nil {
		t.Fatalf("share %s to %s: %v", id, target, err)
	}
}

// 读授权：能读实体、下载、看版本历史，但任何写操作都被拒绝.
func TestReadGrantAllowsReadsOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "shared.txt", "hello", "")
	mustShare(t, svc, owner, id, reader, "read")

	if _, err := svc.Get(ctx, reader, id); err != nil {
		t.Fatalf("reader get: %v", err)
	}

	rc, _, err := svc.Download(ctx, reader, id)
	if err != nil {
		t.Fatalf("reader download: %v", err)
	}

	b, _ := io.ReadAll(rc)
	rc.Close()

	if string(b) != "hello" {
		t.Errorf("reader got content %q", b)
	}

	if _, err := svc.ListVersions(ctx, reader, id); err != nil {
		t.Fatalf("reader list versions: %v", err)
	}

	// 写操作全部 Forbidden
	if _, err := svc.Rename(ctx, reader, id, &types.RenameEntityRequest{Name: "x"}); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("rename by reader: expected ErrForbidden, got %v", err)
	}

	if _, err := svc.UpdateContent(ctx, reader, id, "text/plain", strings.NewReader("x"), 1, ""); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("update by reader: expected ErrForbidden, got %v", err)
	}

	if err := svc.SoftDelete(ctx, reader, id); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("trash by reader: expected ErrForbidden, got %v", err)
	}
}

// 写授权：可以改内容、改名，但所有者专属操作（授权、永久删除）仍被拒绝.
func TestWriteGrantStopsAtOwnerOps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "v1", "")
	mustShare(t, svc, owner, id, writer, "write")

	if _, err := svc.Rename(ctx, writer, id, &types.RenameEntityRequest{Name: "doc2.txt"}); err != nil {
		t.Fatalf("rename by writer: %v", err)
	}

	updateContent(t, svc, writer, id, "v2", "")

	_, err := svc.Share(ctx, writer, id, &types.ShareRequest{Users: []string{reader}, Permission: "read"})
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("share by writer: expected ErrForbidden, got %v", err)
	}

	if _, err := svc.ListGrants(ctx, writer, id); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("list grants by writer: expected ErrForbidden, got %v", err)
	}

	if err := svc.SoftDelete(ctx, writer, id); err != nil {
		t.Fatalf("trash by writer: %v", err)
	}

	if err := svc.Purge(ctx, writer, id); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("purge by writer: expected ErrForbidden, got %v", err)
	}
}

// 没有任何授权的用户不能读实体.
func TestNoGrantNoAccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "private.txt", "secret", "")

	if _, err := svc.Get(ctx, reader, id); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// 重复授权是 upsert：同一用户只保留一条授权记录，级别取最后一次.
func TestReShareUpsertsPermission(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "x", "")
	mustShare(t, svc, owner, id, reader, "read")
	mustShare(t, svc, owner, id, reader, "write")

	resp, err := svc.ListGrants(ctx, owner, id)
	if err != nil {
		t.Fatalf("list grants: %v", err)
	}

	if len(resp.Grants) != 1 {
		t.Fatalf("expected 1 grant after re-share, got %d", len(resp.Grants))
	}

	if resp.Grants[0].Permission != "write" {
		t.Errorf("expected upgraded write permission, got %q", resp.Grants[0].Permission)
	}
}

func TestShareValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "x", "")

	_, err := svc.Share(ctx, owner, id, &types.ShareRequest{Users: []string{reader}, Permission: "admin"})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad permission, got %v", err)
	}

	// 给所有者自己授权会被跳过，不产生记录
	if _, err := svc.Share(ctx, owner, id, &types.ShareRequest{Users: []string{owner}, Permission: "read"}); err != nil {
		t.Fatalf("self share: %v", err)
	}

	resp, _ := svc.ListGrants(ctx, owner, id)
	if len(resp.Grants) != 0 {
		t.Fatalf("owner self-share must not create grants, got %d", len(resp.Grants))
	}
}

// 撤销授权幂等，撤销后访问立即失效.
func TestUnshareRevokesAccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "x", "")
	mustShare(t, svc, owner, id, reader, "read")

	if err := svc.Unshare(ctx, owner, id, reader); err != nil {
		t.Fatalf("unshare: %v", err)
	}

	if _, err := svc.Get(ctx, reader, id); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("access after unshare: expected ErrForbidden, got %v", err)
	}

	// 再撤一次同样成功
	if err := svc.Unshare(ctx, owner, id, reader); err != nil {
		t.Fatalf("repeat unshare: %v", err)
	}
}

func TestListSharedWithMeSkipsTrashed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a := mustUpload(t, svc, owner, "a.txt", "a", "")
	b := mustUpload(t, svc, owner, "b.txt", "b", "")
	mustShare(t, svc, owner, a, reader, "read")
	mustShare(t, svc, owner, b, reader, "write")

	if err := svc.SoftDelete(ctx, owner, b); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	resp, err := svc.ListSharedWithMe(ctx, reader)
	if err != nil {
		t.Fatalf("list shared: %v", err)
	}

	if resp.Total != 1 || resp.Entities[0].Entity.ID != a {
		t.Fatalf("expected only the live entity, got %+v", resp.Entities)
	}
}

// 管理员角色越过授权检查.
func TestAdminRoleOverride(t *testing.T) {
	svc, _ := newTestService(t)

	id := mustUpload(t, svc, owner, "doc.txt", "x", "")

	admin := middleware.WithRole(context.Background(), middleware.RoleAdmin)

	if _, err := svc.Get(admin, reader, id); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	if _, err := svc.Rename(admin, reader, id, &types.RenameEntityRequest{Name: "renamed.txt"}); err != nil {
		t.Fatalf("admin rename: %v", err)
	}

	if _, err := svc.ListGrants(admin, reader, id); err != nil {
		t.Fatalf("admin list grants: %v", err)
	}
}
