// Package storage 初始化并聚合存储资源：数据库、对象存储、消息队列、KV 缓存.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	s3Client := mgr.GetS3Client()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yeisme/docvault/pkg/internal/model"
	dbc "github.com/yeisme/docvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/docvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/docvault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/docvault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// Manager 聚合所有存储资源.DB 与 S3 是必需的，MQ 与 KV 初始化失败时降级运行.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	MQ *mqc.Client
	KV *kvc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		dbi, e := dbc.New(ctx)
		if e != nil {
			err = fmt.Errorf("init db: %w", e)
			return
		}

		m.DB = dbi

		if e := dbi.AutoMigrate(model.All()...); e != nil {
			err = fmt.Errorf("auto migrate: %w", e)
			return
		}

		s3i, e := s3c.New(ctx)
		if e != nil {
			err = fmt.Errorf("init s3: %w", e)
			return
		}

		m.S3 = s3i

		// MQ 仅承载审计事件，连不上只降级不阻断启动
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("MQ 初始化失败，审计事件发布被禁用")
		} else {
			m.MQ = mqi
		}

		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("KV 初始化失败，缓存被禁用")
		} else {
			m.KV = kvi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// Close 依次关闭全部存储资源.
func (m *Manager) Close() error {
	var firstErr error

	if m.MQ != nil {
		if err := m.MQ.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.KV != nil {
		if err := m.KV.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.S3 != nil {
		if err := m.S3.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.DB != nil {
		if sqlDB, err := m.DB.GetDB().DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}
