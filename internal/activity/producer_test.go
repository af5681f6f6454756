package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"movieapp/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_PublishesEventJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	sessionID := uuid.New()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var got Event
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.Type != EventSeatsSuggested || got.SubjectID != sessionID {
			return fmt.Errorf("unexpected event %+v", got)
		}
		if got.Payload["requested"] != float64(4) {
			return fmt.Errorf("unexpected payload %v", got.Payload)
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer, "movieapp.activity")
	require.NoError(t, publisher.Publish(context.Background(), SeatsSuggested(sessionID, 4, 4)))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer, "movieapp.activity")
	err := publisher.Publish(context.Background(), RecommendationsServed(uuid.New(), nil))

	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, publisher.Close())
}

func TestEvent_PartitionKeyIsSubject(t *testing.T) {
	customerID := uuid.New()
	event := RecommendationsServed(customerID, []uuid.UUID{uuid.New()})

	assert.Equal(t, customerID.String(), event.PartitionKey())
	assert.Equal(t, EventRecommendationsServed, event.Type)
}

func TestNewSaramaConfig(t *testing.T) {
	cfg := NewSaramaConfig(config.KafkaConfig{ClientID: "movieapp-test", RetryMax: 5, Timeout: 3 * time.Second})

	assert.Equal(t, "movieapp-test", cfg.ClientID)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.NoError(t, cfg.Validate())
}

type recordingPublisher struct {
	events chan *Event
}

func (r recordingPublisher) Publish(_ context.Context, event *Event) error {
	r.events <- event
	return nil
}

func (recordingPublisher) Close() error { return nil }

func TestPublishAsync(t *testing.T) {
	rec := recordingPublisher{events: make(chan *Event, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	PublishAsync(ctx, rec, SeatsSuggested(uuid.New(), 2, 1))

	select {
	case event := <-rec.events:
		assert.Equal(t, EventSeatsSuggested, event.Type)
	case <-time.After(time.Second):
		t.Fatal("event was not published")
	}

	assert.NotPanics(t, func() { PublishAsync(ctx, nil, SeatsSuggested(uuid.New(), 1, 1)) })
}
