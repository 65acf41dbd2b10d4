package notifier

import (
	"context"
	"time"

	"spotex/internal/model"
	"spotex/pkg/kafka"
	"spotex/pkg/logger"

	"github.com/goccy/go-json"
)

// 订单簿变更通知，fire-and-forget
// 核心只负责发出信号，推给谁、怎么推由具体实现决定

type BookNotifier interface {
	BookChanged(symbol string)
}

// Multi 把一个信号同时发给多个下游
func Multi(ns ...BookNotifier) BookNotifier {
	return multiNotifier(ns)
}

type multiNotifier []BookNotifier

func (m multiNotifier) BookChanged(symbol string) {
	for _, n := range m {
		if n != nil {
			n.BookChanged(symbol)
		}
	}
}

// NopNotifier 单测用
type NopNotifier struct{}

func (NopNotifier) BookChanged(string) {}

// KafkaNotifier 把变更事件发到kafka，下游（行情服务等）自行消费
type KafkaNotifier struct {
	producer kafka.ProducerService
}

func NewKafkaNotifier(p kafka.ProducerService) *KafkaNotifier {
	return &KafkaNotifier{producer: p}
}

func (n *KafkaNotifier) BookChanged(symbol string) {
	event := model.BookChangedEvent{
		Symbol:    symbol,
		Timestamp: time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("marshal book changed event error: %v", err)
		return
	}
	// 异步发送，通知失败不影响交易本身
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := n.producer.Produce(ctx, []byte(symbol), payload); err != nil {
			logger.Errorf("produce book changed event error: %v", err)
		}
	}()
}
