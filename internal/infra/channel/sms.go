package channel

import (
	"context"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the SMS sender uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewSMSWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SMSTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// SMSSender publishes text messages for the SMS gateway. Messages are keyed by
// phone number so one recipient's messages stay ordered.
type SMSSender struct {
	writer MessageWriter
	clock  clock.Clock
}

func NewSMSSender(w MessageWriter, clk clock.Clock) *SMSSender {
	return &SMSSender{writer: w, clock: clk}
}

func (s *SMSSender) Send(ctx context.Context, n *notification.Notification, ch notification.ChannelDescriptor) (string, error) {
	payload, err := encodeDelivery(n, ch, s.clock.Now())
	if err != nil {
		return "", errs.Wrap(err, "encode sms payload")
	}
	messageID := uuid.NewString()
	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ch.Address),
		Value: payload,
		Time:  s.clock.Now(),
		Headers: []kafka.Header{
			{Key: "message-id", Value: []byte(messageID)},
			{Key: "notification-id", Value: []byte(n.ID)},
		},
	})
	if err != nil {
		return "", errs.Wrap(err, "sms publish")
	}
	return messageID, nil
}

func (s *SMSSender) Close() error {
	return s.writer.Close()
}
