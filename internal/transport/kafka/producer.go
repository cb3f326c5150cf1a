package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"

	"service-pickup/internal/domain"
	"service-pickup/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes pickup lifecycle events keyed by pickup id.
// A nil *Producer is a valid no-op publisher.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
	failed   prometheus.Counter
}

// NewProducer creates a Producer. It returns nil, nil when brokers or topic
// are not configured.
func NewProducer(logger logx.Logger, brokers []string, topic string, failed prometheus.Counter) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	sp, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return newProducer(sp, topic, logger, failed), nil
}

func newProducer(sp sarama.SyncProducer, topic string, logger logx.Logger, failed prometheus.Counter) *Producer {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Producer{producer: sp, topic: topic, logger: logger, failed: failed}
}

// Publish sends e synchronously.
func (p *Producer) Publish(ctx context.Context, e domain.PickupEvent) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(FromDomain(e))
	if err != nil {
		return fmt.Errorf("marshal pickup event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.PickupID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		if p.failed != nil {
			p.failed.Inc()
		}
		return fmt.Errorf("send pickup event %s: %w", e.PickupID, err)
	}

	p.logger.Debug("pickup event published",
		logx.String("pickup_id", e.PickupID),
		logx.String("operation", e.Operation),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close flushes and closes the underlying producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
