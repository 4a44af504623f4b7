//go:build unit

package channel_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra/channel"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/tests/common/builder"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func stored() *notification.Notification {
	n := builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
		b.Priority = string(notification.PriorityUrgent)
		b.ActionURL = "/projects/p1/tasks/7"
	}).MustBuildDomain()
	n.ID = "n1"
	return n
}

func TestRegistry(t *testing.T) {
	clk := clock.NewMockClock(now)
	inApp := channel.NewInAppSender(docstore.NewMemory(), clk)

	r := channel.NewRegistry().
		Register(notification.ChannelInApp, inApp).
		Register(notification.ChannelEmail, channel.NewEmailSender(config.SMTPConfig{Host: "mail"}, clk))

	s, ok := r.Lookup(notification.ChannelInApp)
	assert.True(t, ok)
	assert.Same(t, inApp, s)

	_, ok = r.Lookup(notification.ChannelSMS)
	assert.False(t, ok)
	_, ok = r.Lookup("fax")
	assert.False(t, ok)

	assert.Equal(t, []notification.ChannelKind{notification.ChannelEmail, notification.ChannelInApp}, r.Kinds())

	r.Register(notification.ChannelEmail, nil)
	_, ok = r.Lookup(notification.ChannelEmail)
	assert.False(t, ok)
}

func TestInAppSender_WritesInboxEntry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(now)
	store := docstore.NewMemory(docstore.WithClock(clk))

	id, err := channel.NewInAppSender(store, clk).Send(ctx, stored(), notification.ChannelDescriptor{Kind: notification.ChannelInApp})
	require.NoError(t, err)

	doc, err := store.Get(ctx, channel.InboxCollection, id)
	require.NoError(t, err)
	assert.Equal(t, "n1", doc.Data.String("notificationId"))
	assert.Equal(t, "u1", doc.Data.String("userId"))
	assert.Equal(t, now, doc.Data.Time("deliveredAt"))
}

func TestInAppSender_StoreFailure(t *testing.T) {
	store := docstore.NewMemory(docstore.WithRules(func(docstore.Write) error { return errors.New("inbox full") }))

	_, err := channel.NewInAppSender(store, clock.NewMockClock(now)).Send(context.Background(), stored(), notification.ChannelDescriptor{Kind: notification.ChannelInApp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inbox full")
}

func TestPushSender(t *testing.T) {
	ch := notification.ChannelDescriptor{Kind: notification.ChannelPush, Address: "device-abc"}

	t.Run("success: publishes keyed payload", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var got map[string]any
			if err := json.Unmarshal(val, &got); err != nil {
				return err
			}
			if got["notificationId"] != "n1" || got["address"] != "device-abc" {
				return errors.New("unexpected payload")
			}
			return nil
		})

		id, err := channel.NewPushSender(producer, "notifications.push", clock.NewMockClock(now)).Send(context.Background(), stored(), ch)
		require.NoError(t, err)
		assert.Regexp(t, `^\d+/\d+$`, id)
		require.NoError(t, producer.Close())
	})

	t.Run("error: broker rejects", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrNotEnoughReplicas)

		_, err := channel.NewPushSender(producer, "notifications.push", clock.NewMockClock(now)).Send(context.Background(), stored(), ch)
		require.Error(t, err)
		assert.ErrorIs(t, err, sarama.ErrNotEnoughReplicas)
		require.NoError(t, producer.Close())
	})
}

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestSMSSender(t *testing.T) {
	ch := notification.ChannelDescriptor{Kind: notification.ChannelSMS, Address: "+819012345678"}

	t.Run("success: keyed by phone number", func(t *testing.T) {
		w := &recordingWriter{}
		id, err := channel.NewSMSSender(w, clock.NewMockClock(now)).Send(context.Background(), stored(), ch)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		require.Len(t, w.msgs, 1)
		assert.Equal(t, "+819012345678", string(w.msgs[0].Key))
		assert.Equal(t, "message-id", w.msgs[0].Headers[0].Key)
		assert.Equal(t, id, string(w.msgs[0].Headers[0].Value))
	})

	t.Run("error: writer failure", func(t *testing.T) {
		w := &recordingWriter{err: kafka.LeaderNotAvailable}
		_, err := channel.NewSMSSender(w, clock.NewMockClock(now)).Send(context.Background(), stored(), ch)
		require.Error(t, err)
		assert.ErrorIs(t, err, kafka.LeaderNotAvailable)
	})
}

func TestEmailSender(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: "587", From: "site@example.com"}
	ch := notification.ChannelDescriptor{Kind: notification.ChannelEmail, Address: "foreman@example.com"}

	t.Run("success: composes one message", func(t *testing.T) {
		var gotAddr string
		var gotTo []string
		var gotMsg string
		sender := channel.NewEmailSender(cfg, clock.NewMockClock(now)).WithSendMail(
			func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
				gotAddr, gotTo, gotMsg = addr, to, string(msg)
				assert.Equal(t, "site@example.com", from)
				return nil
			})

		n := stored()
		n.Title = "Crane\r\nBcc: attacker@example.com"
		id, err := sender.Send(context.Background(), n, ch)
		require.NoError(t, err)

		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, []string{"foreman@example.com"}, gotTo)
		assert.Contains(t, gotMsg, "Message-ID: "+id+"\r\n")
		assert.Contains(t, gotMsg, "Subject: [URGENT] Crane  Bcc: attacker@example.com\r\n")
		assert.NotContains(t, gotMsg, "\r\nBcc:")
		assert.True(t, strings.HasSuffix(gotMsg, "/projects/p1/tasks/7\r\n"))
	})

	t.Run("error: context deadline wins over a hung server", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		sender := channel.NewEmailSender(cfg, clock.NewMockClock(now)).WithSendMail(
			func(string, smtp.Auth, string, []string, []byte) error {
				<-release
				return nil
			})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := sender.Send(ctx, stored(), ch)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
