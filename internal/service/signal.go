package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/todolist/internal/domain"
)

// ItemChannel is the redis channel item events are published on.
const ItemChannel = "todolist:items"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.ItemEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode item event")
	}

	err = s.rdb.Publish(ctx, ItemChannel, jsonstr).Err()
	if err != nil {
		return errors.Wrap(err, "publish item event")
	}

	return nil
}

// Realtime forwards every published item event to output until ctx is done.
func (s *SignalService) Realtime(ctx context.Context, output chan<- domain.ItemEvent) error {
	pubsub := s.rdb.Subscribe(ctx, ItemChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrap(err, "subscribe item events")
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			event, err := decodeEvent(msg.Payload)
			if err != nil {
				slog.WarnContext(
					ctx, "dropping malformed item event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func decodeEvent(payload string) (domain.ItemEvent, error) {
	var event domain.ItemEvent
	err := json.Unmarshal([]byte(payload), &event)
	return event, err
}

// NopSignal is used when no redis is configured: nothing is published and
// realtime listeners simply wait for their connection to close.
type NopSignal struct{}

func (NopSignal) Publish(ctx context.Context, event domain.ItemEvent) error {
	return nil
}

func (NopSignal) Realtime(ctx context.Context, output chan<- domain.ItemEvent) error {
	<-ctx.Done()
	return nil
}
