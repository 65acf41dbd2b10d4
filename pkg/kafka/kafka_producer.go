package kafka

import (
	"context"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"
)

// Kafka 生产者服务
// 定义接口，方便测试和替换
type ProducerService interface {
	Produce(ctx context.Context, key []byte, value []byte) error
	Close()
}

type kafkaProducer struct {
	orderbookWriter *kafka.Writer // 订单簿变更事件
}

func NewKafkaProducer(brokerURL string) ProducerService {
	orderbookWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokerURL),
		Topic:    "orderbook_updated",
		Balancer: &kafka.LeastBytes{}, // 保证写入负载均衡
	}

	return &kafkaProducer{
		orderbookWriter: orderbookWriter,
	}
}

func (p *kafkaProducer) Produce(ctx context.Context, key []byte, value []byte) error {
	if p.orderbookWriter == nil {
		return errors.New("kafka producer not initialized")
	}
	return p.orderbookWriter.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

func (p *kafkaProducer) Close() {
	if p.orderbookWriter != nil {
		if err := p.orderbookWriter.Close(); err != nil {
			log.Printf("close kafka writer error: %v", err)
		}
	}
}
