package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishEntityEvent 发布任意实体生命周期事件（topic 需为 EntityTopics 之一）.
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息.
func PublishEntityEvent(pub message.Publisher, topic string, payload EntityEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// PublishShareEvent 发布授权变更事件（dv.entity.shared / dv.entity.unshared）.
func PublishShareEvent(pub message.Publisher, topic string, payload ShareEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// PublishVersionRestored 发布 dv.version.restored 事件.
func PublishVersionRestored(pub message.Publisher, payload VersionRestoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVersionRestored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVersionRestored, msg)
}

// ParseEntityEvent 将 Watermill 消息解析为强类型 Envelope（EntityEventPayload）.
func ParseEntityEvent(msg *message.Message) (Message[EntityEventPayload], error) {
	return ParseWatermillMessage[EntityEventPayload](msg)
}
