// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"kreatiq/internal/config"
	"kreatiq/internal/event"
	"kreatiq/pkg/log"
)

// Publisher 把领域事件写入 Kafka 主题。
type Publisher struct {
	writer *kafka.Writer
}

var _ event.Publisher = (*Publisher)(nil)

// NewPublisher 根据配置创建事件发布器。未配置 brokers 时返回 event.Nop。
func NewPublisher(cfg config.KafkaConfig) event.Publisher {
	brokers := splitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		log.Info("未配置 Kafka brokers，领域事件将被丢弃")
		return event.Nop{}
	}
	log.Infof("Kafka 生产者初始化成功，主题 '%s'", cfg.Topic)
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish 同步写入一批事件。
func (p *Publisher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := encode(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write kafka messages: %w", err)
	}
	return nil
}

// Close 刷新并关闭底层 writer。
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encode(e event.Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", e.Type, err)
	}
	return kafka.Message{
		Key:   []byte(e.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}, nil
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
