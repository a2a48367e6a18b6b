package configs

import "github.com/spf13/viper"

// EventsConfig 控制审计事件发布的开关（全局与分领域）。
type EventsConfig struct {
	Enabled bool               `mapstructure:"enabled"` // 总开关
	Entity  EntityEventsConfig `mapstructure:"entity"`
}

// EntityEventsConfig 针对实体生命周期领域的事件开关。
type EntityEventsConfig struct {
	Created    bool `mapstructure:"created"`
	Updated    bool `mapstructure:"updated"`
	Renamed    bool `mapstructure:"renamed"`
	Moved      bool `mapstructure:"moved"`
	Shared     bool `mapstructure:"shared"`
	Trashed    bool `mapstructure:"trashed"`
	Restored   bool `mapstructure:"restored"`
	Purged     bool `mapstructure:"purged"`
	VersionOps bool `mapstructure:"version_ops"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 生命周期事件：默认仅开启最小必要集，避免噪声过大
	v.SetDefault("events.entity.created", true)
	v.SetDefault("events.entity.trashed", true)
	v.SetDefault("events.entity.purged", true)

	// 可选事件：默认关闭，按需开启
	v.SetDefault("events.entity.updated", false)
	v.SetDefault("events.entity.renamed", false)
	v.SetDefault("events.entity.moved", false)
	v.SetDefault("events.entity.shared", false)
	v.SetDefault("events.entity.restored", false)
	v.SetDefault("events.entity.version_ops", false)
}
