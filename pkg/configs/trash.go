package configs

import (
	"time"

	"github.com/spf13/viper"
)

// TrashConfig 回收站自动清理配置。
type TrashConfig struct {
	// AutoCleanEnabled 是否启用定时清理过期回收站记录
	AutoCleanEnabled bool `mapstructure:"auto_clean_enabled"`
	// RetentionDays 进入回收站超过该天数的实体会被永久删除
	RetentionDays int `mapstructure:"retention_days"`
}

const (
	DefaultTrashAutoCleanEnabled = true
	DefaultTrashRetentionDays    = 30
)

// RetentionCutoff 返回当前时刻对应的清理阈值。
func (c *TrashConfig) RetentionCutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(c.RetentionDays) * 24 * time.Hour)
}

func (c *TrashConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("trash.auto_clean_enabled", DefaultTrashAutoCleanEnabled)
	v.SetDefault("trash.retention_days", DefaultTrashRetentionDays)
}
