package channel

import (
	"context"
	"fmt"

	"sitehub/internal/domain/notification"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// NewPushProducer builds an idempotent producer that waits for all in-sync replicas.
func NewPushProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.ClientID = "sitehub-push"
	sc.Producer.Return.Successes = true
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5
	prod, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, errs.Wrap(err, "create push producer")
	}
	return prod, nil
}

// PushSender hands device pushes to the push gateway through a Kafka topic,
// keyed by notification id so retries land on the same partition.
type PushSender struct {
	producer sarama.SyncProducer
	topic    string
	clock    clock.Clock
}

func NewPushSender(producer sarama.SyncProducer, topic string, clk clock.Clock) *PushSender {
	return &PushSender{producer: producer, topic: topic, clock: clk}
}

// Send returns "partition/offset" of the published message.
func (s *PushSender) Send(ctx context.Context, n *notification.Notification, ch notification.ChannelDescriptor) (string, error) {
	payload, err := encodeDelivery(n, ch, s.clock.Now())
	if err != nil {
		return "", errs.Wrap(err, "encode push payload")
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(n.ID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("device-token"), Value: []byte(ch.Address)},
		},
	}

	type sent struct {
		partition int32
		offset    int64
		err       error
	}
	// SendMessage has no context; the buffered channel lets it finish after we give up.
	done := make(chan sent, 1)
	go func() {
		p, o, err := s.producer.SendMessage(msg)
		done <- sent{p, o, err}
	}()

	select {
	case <-ctx.Done():
		return "", errs.Wrap(ctx.Err(), "push publish")
	case r := <-done:
		if r.err != nil {
			return "", errs.Wrap(r.err, "push publish")
		}
		return fmt.Sprintf("%d/%d", r.partition, r.offset), nil
	}
}

func (s *PushSender) Close() error {
	return s.producer.Close()
}
