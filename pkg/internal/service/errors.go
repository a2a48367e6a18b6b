package service

import (
	"errors"

	"gorm.io/gorm"
)

// 错误分类：handler 层据此映射 HTTP 状态码.
// 除 ErrStorage 外都是调用方可修正的业务错误.
var (
	// ErrValidation 输入不合法（空名称、非法权限级别等），任何变更发生之前返回.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound 实体、版本或授权目标不存在.
	ErrNotFound = errors.New("not found")
	// ErrForbidden 权限评估拒绝了请求的访问级别，不产生任何副作用.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict 结构性不变量冲突：移动成环、清除未进回收站的实体、版本号竞争失败.
	ErrConflict = errors.New("conflict")
	// ErrStorage 对象存储读写失败，视为瞬时故障，相关数据库变更整体回滚.
	ErrStorage = errors.New("storage unavailable")
)

// translateDBErr 把 GORM 错误翻译成业务错误分类.
// 重复键意味着版本号分配的并发竞争被唯一索引拒绝，归为冲突.
func translateDBErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
