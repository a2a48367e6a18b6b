// Package queue 定义审计事件主题常量，供发布/订阅使用.
package queue

// 主题命名规范：dv.<域>.<动作>，保持稳定且向后兼容.
// 域：entity(实体生命周期)、version(版本台账)、trash(回收站)
// 动作：过去式表示已发生的事实（created/renamed/moved/...）

const (
	// 实体生命周期领域.
	TopicEntityCreated        = "dv.entity.created"         // 实体创建（上传文档/新建容器），附带版本 1
	TopicEntityContentUpdated = "dv.entity.content.updated" // 文档内容更新，产生新版本与新存储键
	TopicEntityRenamed        = "dv.entity.renamed"         // 实体改名，产生新版本
	TopicEntityMoved          = "dv.entity.moved"           // 实体移动到新父容器，产生新版本
	TopicEntityShared         = "dv.entity.shared"          // 授权新增/更新（不产生版本）
	TopicEntityUnshared       = "dv.entity.unshared"        // 授权移除（不产生版本）
	TopicEntityTrashed        = "dv.entity.trashed"         // 软删除，进入回收站（不产生版本）
	TopicEntityRestored       = "dv.entity.restored"        // 从回收站恢复（不产生版本）
	TopicEntityPurged         = "dv.entity.purged"          // 永久删除，实体与内容不可恢复

	// 版本台账领域.
	TopicVersionRestored = "dv.version.restored" // 恢复到历史版本（正向追加新版本）
	TopicVersionAppended = "dv.version.appended" // 台账追加任意新版本（细粒度订阅用）

	// 回收站领域.
	TopicTrashEmptied = "dv.trash.emptied"   // 清空回收站
	TopicTrashCleaned = "dv.trash.autoclean" // 定时清理过期回收站记录
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 实体生命周期相关主题集合.
	EntityTopics = []string{
		TopicEntityCreated, TopicEntityContentUpdated, TopicEntityRenamed,
		TopicEntityMoved, TopicEntityShared, TopicEntityUnshared,
		TopicEntityTrashed, TopicEntityRestored, TopicEntityPurged,
	}

	// 版本台账相关主题集合.
	VersionTopics = []string{
		TopicVersionRestored, TopicVersionAppended,
	}

	// 回收站相关主题集合.
	TrashTopics = []string{
		TopicTrashEmptied, TopicTrashCleaned,
	}
)
