// Package queue 管理审计事件的发布与订阅，实体生命周期的每次成功变更
// 都会产生一条事件，供下游（审计落库、通知、统计）异步消费.
//
// 概览
//   - 采用发布/订阅模型，核心服务只发布，消费端独立部署
//   - 统一的消息封装：Message[Payload] = Header + Payload
//   - 主题常量见 topics.go，负载结构体见 payloads.go
//   - 默认 JSON 编解码（bytedance/sonic），跨语言易解析
//
// 消息信封（Envelope）JSON 结构
//
//	{
//	  "header": {
//	    "topic": "dv.entity.created",
//	    "trace_id": "optional-trace-id",
//	    "producer": "docvault",
//	    "occurred_at": "2025-01-02T03:04:05.123456Z",
//	    "version": "v1"
//	  },
//	  "payload": { ... 取决于具体主题 ... }
//	}
//
// 发布/订阅示例
//
//	payload := queue.EntityEventPayload{
//	  Entity: queue.EntityRef{
//	    EntityID: "5f4c...",
//	    Kind: "document",
//	    Name: "report.pdf",
//	    OwnerID: "alice@example.com",
//	  },
//	  Actor: "alice@example.com",
//	  VersionNo: 1,
//	}
//
//	msg, _ := queue.NewWatermillMessage(
//	  queue.TopicEntityCreated, payload,
//	  queue.WithTraceID("trace-xyz"),
//	  queue.WithProducer("docvault"),
//	)
//
//	// client, _ := mq.New(ctx)
//	// _ = client.Publish(ctx, queue.TopicEntityCreated, msg)
//
//	// 订阅端：
//	// env, _ := queue.ParseWatermillMessage[queue.EntityEventPayload](m)
//	// 使用 env.Header / env.Payload，然后 m.Ack()
//
// 注意事项
//  1. occurred_at 为 UTC，RFC3339 格式
//  2. version 便于后向兼容演进，消费者应忽略未知字段
//  3. 审计发布是尽力而为的：发布失败只记日志，绝不影响生命周期操作的结果
//  4. 若需要业务级幂等，可将消息 ID 设为"确定性键"（如 entity_id|version_no 的哈希）
//
// 参考：topics.go（主题）、payloads.go（负载）、internal/storage/mq（MQ 客户端封装）.
package queue

import (
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
)

const (
	PayloadVersionV1 string = "v1"
)

// NewEventHeader 便捷创建事件头.
func NewEventHeader(topic string, opts ...func(*EventHeader)) EventHeader {
	hdr := EventHeader{
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
	}
	for _, opt := range opts {
		opt(&hdr)
	}

	return hdr
}

// WithTraceID 设置 TraceID.
func WithTraceID(id string) func(*EventHeader) { return func(h *EventHeader) { h.TraceID = id } }

// WithProducer 设置 Producer.
func WithProducer(p string) func(*EventHeader) { return func(h *EventHeader) { h.Producer = p } }

// Encode 将消息封装为 JSON 字节切片.
func Encode[T any](msg Message[T]) ([]byte, error) { return sonic.Marshal(msg) }

// Decode 从 JSON 字节解码为消息.
func Decode[T any](b []byte) (Message[T], error) {
	var m Message[T]

	err := sonic.Unmarshal(b, &m)

	return m, err
}

// NewWatermillMessage 构造一个 watermill 消息，设置 ID 与元数据.
func NewWatermillMessage[T any](topic string, payload T, opts ...func(*EventHeader)) (*message.Message, error) {
	header := NewEventHeader(topic, opts...)
	env := Message[T]{Header: header, Payload: payload}

	data, err := Encode(env)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)

	if header.TraceID != "" {
		msg.Metadata.Set("trace_id", header.TraceID)
	}

	if header.Producer != "" {
		msg.Metadata.Set("producer", header.Producer)
	}

	msg.Metadata.Set("occurred_at", header.OccurredAt.Format(time.RFC3339Nano))

	if header.Version != "" {
		msg.Metadata.Set("version", header.Version)
	}

	return msg, nil
}

// ParseWatermillMessage 解出泛型负载.
func ParseWatermillMessage[T any](msg *message.Message) (Message[T], error) {
	return Decode[T](msg.Payload)
}
