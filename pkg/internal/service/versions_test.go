package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

const owner = "alice@example.com"

func updateContent(t *testing.T, svc *service.EntityService, user, id, content, desc string) *types.MutateEntityResponse {
	t.Helper()

	resp, err := svc.UpdateContent(context.Background(), user, id, "text/plain",
		strings.NewReader(content), int64(len(content)), desc)
	if err != nil {
		t.Fatalf("update content: %v", err)
	}

	return resp
}

// 完整走一遍文档生命周期，验证版本台账的关键不变量：
// 版本号从 1 开始连续递增，任意时刻有且仅有一条 current 记录.
func TestDocumentLifecycleLedger(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "report.pdf", "draft numbers", "")

	// v2: 内容更新
	updateContent(t, svc, owner, id, "Q2 numbers", "add Q2 numbers")

	// v3: 重命名
	if _, err := svc.Rename(ctx, owner, id, &types.RenameEntityRequest{Name: "report-final.pdf"}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	// v4: 移动到容器
	folder := mustContainer(t, svc, owner, "reports", "")
	if _, err := svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: folder}); err != nil {
		t.Fatalf("move: %v", err)
	}

	ledger, err := svc.ListVersions(ctx, owner, id)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}

	if ledger.Total != 4 {
		t.Fatalf("expected 4 versions, got %d", ledger.Total)
	}

	// 倒序返回：v4 在最前
	currentCount := 0

	for i, v := range ledger.Versions {
		wantNo := int64(4 - i)
		if v.VersionNo != wantNo {
			t.Errorf("version[%d]: expected no %d, got %d", i, wantNo, v.VersionNo)
		}

		if v.Current {
			currentCount++

			if v.VersionNo != 4 {
				t.Errorf("current flag on v%d, expected v4", v.VersionNo)
			}
		}
	}

	if currentCount != 1 {
		t.Fatalf("expected exactly one current version, got %d", currentCount)
	}

	// 各版本快照保留当时的名字
	if ledger.Versions[3].Name != "report.pdf" {
		t.Errorf("v1 snapshot name: got %q", ledger.Versions[3].Name)
	}

	if ledger.Versions[0].Name != "report-final.pdf" {
		t.Errorf("v4 snapshot name: got %q", ledger.Versions[0].Name)
	}
}

// 恢复历史版本不改写历史：产生一条新的 current 版本，旧记录原样保留.
func TestRestoreVersionAppendsForward(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "notes.txt", "v1 content", "")
	updateContent(t, svc, owner, id, "v2 content", "second draft")

	ledger, err := svc.ListVersions(ctx, owner, id)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}

	v1 := ledger.Versions[len(ledger.Versions)-1]
	if v1.VersionNo != 1 {
		t.Fatalf("expected oldest to be v1, got v%d", v1.VersionNo)
	}

	resp, err := svc.RestoreVersion(ctx, owner, id, v1.ID)
	if err != nil {
		t.Fatalf("restore version: %v", err)
	}

	if resp.Version.VersionNo != 3 {
		t.Fatalf("expected restore to append v3, got v%d", resp.Version.VersionNo)
	}

	if !resp.Version.Current {
		t.Fatal("restored version should be current")
	}

	// 内容回到 v1 的存储键
	rc, info, err := svc.Download(ctx, owner, id)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	b, _ := io.ReadAll(rc)
	if string(b) != "v1 content" {
		t.Errorf("expected v1 content after restore, got %q", b)
	}

	if info.Size != int64(len("v1 content")) {
		t.Errorf("size not restored: %d", info.Size)
	}

	// 台账长度 3，历史未被改写
	ledger, err = svc.ListVersions(ctx, owner, id)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}

	if ledger.Total != 3 {
		t.Fatalf("expected 3 versions, got %d", ledger.Total)
	}
}

// 恢复版本时不搬动实体位置.
func TestRestoreVersionKeepsLocation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "doc.txt", "original", "")
	folder := mustContainer(t, svc, owner, "archive", "")

	if _, err := svc.Move(ctx, owner, id, &types.MoveEntityRequest{ParentID: folder}); err != nil {
		t.Fatalf("move: %v", err)
	}

	ledger, _ := svc.ListVersions(ctx, owner, id)
	v1 := ledger.Versions[len(ledger.Versions)-1]

	if _, err := svc.RestoreVersion(ctx, owner, id, v1.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	info, err := svc.Get(ctx, owner, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if info.ParentID != folder {
		t.Errorf("restore moved the entity: parent %q, expected %q", info.ParentID, folder)
	}
}

// 目标版本不属于该实体或不存在时返回 NotFound.
func TestRestoreVersionUnknownTarget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "a.txt", "a", "")
	other := mustUpload(t, svc, owner, "b.txt", "b", "")

	otherLedger, _ := svc.ListVersions(ctx, owner, other)

	_, err := svc.RestoreVersion(ctx, owner, id, otherLedger.Versions[0].ID)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// 两个写操作同时给同一实体分配版本号时，(entity_id, version_no) 唯一索引
// 让后到者在数据库层失败并映射为 ErrConflict.用 Create 回调在真正插入前
// 塞入一条同号记录，确定性地复现竞争.
func TestVersionNumberRaceMapsToConflict(t *testing.T) {
	svc, _, gdb := newTestServiceDB(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "contended.txt", "v1", "")

	fired := false

	err := gdb.Callback().Create().Before("gorm:create").Register("rival_version", func(db *gorm.DB) {
		v, ok := db.Statement.Dest.(*model.Version)
		if !ok || fired {
			return
		}

		fired = true

		rival := model.Version{
			ID:        "rival-" + v.ID,
			EntityID:  v.EntityID,
			VersionNo: v.VersionNo,
			AuthorID:  "mallory@example.com",
		}
		if err := db.Session(&gorm.Session{NewDB: true}).Create(&rival).Error; err != nil {
			_ = db.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = svc.Rename(ctx, owner, id, &types.RenameEntityRequest{Name: "late.txt"})
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if !fired {
		t.Fatal("rival insert did not run")
	}

	// 整个事务回滚：台账仍然只有 v1，名字未变
	ledger, err := svc.ListVersions(ctx, owner, id)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}

	if ledger.Total != 1 {
		t.Fatalf("expected ledger untouched with 1 version, got %d", ledger.Total)
	}

	info, err := svc.Get(ctx, owner, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if info.Name != "contended.txt" {
		t.Errorf("failed rename mutated entity: name %q", info.Name)
	}
}

// 回收站中的实体：版本历史可读，但恢复版本要求先移出回收站.
func TestVersionsOfTrashedEntity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := mustUpload(t, svc, owner, "old.txt", "x", "")

	if err := svc.SoftDelete(ctx, owner, id); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	ledger, err := svc.ListVersions(ctx, owner, id)
	if err != nil {
		t.Fatalf("list versions of trashed entity: %v", err)
	}

	if ledger.Total != 1 {
		t.Fatalf("expected 1 version, got %d", ledger.Total)
	}

	_, err = svc.RestoreVersion(ctx, owner, id, ledger.Versions[0].ID)
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected ErrConflict for trashed entity, got %v", err)
	}
}
