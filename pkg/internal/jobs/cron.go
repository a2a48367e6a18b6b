// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/docvault/pkg/configs"
	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/storage"
	"github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/middleware"
	"github.com/yeisme/docvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每天 07:00 和 19:00 执行回收站自动清理（按配置的保留天数）
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	if !configs.GetConfig().Trash.AutoCleanEnabled {
		log.Logger().Info().Msg("trash auto clean disabled, skip cron registration")
		return nil
	}

	// 将 storage manager 注入到 context，便于 service 使用；
	// 清理跨所有用户，以管理员身份执行
	baseCtx := middleware.WithRole(ctxPkg.WithStorageManager(context.Background(), mgr), middleware.RoleAdmin)

	// 每天 07:00 自动清理回收站
	_ = sched.AddCron(JobTrashAutoCleanMorning, CronTrashAutoCleanMorning, func(ctx context.Context) {
		runTrashAutoClean(ctx)
	}, baseCtx)

	// 每天 19:00 自动清理回收站
	_ = sched.AddCron(JobTrashAutoCleanEvening, CronTrashAutoCleanEvening, func(ctx context.Context) {
		runTrashAutoClean(ctx)
	}, baseCtx)

	return nil
}

// runTrashAutoClean 永久删除超过保留期的回收站实体.
func runTrashAutoClean(ctx context.Context) {
	l := log.Logger().With().Str("job", "trash.auto_clean").Logger()

	cfg := configs.GetConfig().Trash
	before := cfg.RetentionCutoff(time.Now())

	svc := service.NewEntityService(ctx)

	n, err := svc.AutoClean(ctx, before)
	if err != nil {
		l.Error().Err(err).Msg("auto clean failed")
		return
	}

	if n > 0 {
		l.Info().Int("affected", n).Time("before", before).Msg("auto cleaned trash")
	}
}
