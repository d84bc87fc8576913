package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"medscan_gateway/models"
	"medscan_gateway/pkg/logging"
)

const (
	ScanEventChannel = "scan:events"
)

type EventPublisher struct {
	redisClient *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redisClient: redisClient}
}

func (p *EventPublisher) PublishScanEvent(event *models.ScanEvent) error {
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		logging.Logger.Error("fail PublishScanEvent", "error", err)
		return err
	}
	ctx := context.Background()
	if err := p.redisClient.Publish(ctx, ScanEventChannel, string(data)).Err(); err != nil {
		logging.Logger.Error("fail PublishScanEvent", "error", err)
		return err
	}
	return nil
}

func (p *EventPublisher) SubscribeScanEvents(ctx context.Context) (<-chan *models.ScanEvent, error) {
	pubsub := p.redisClient.Subscribe(ctx, ScanEventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Logger.Error("fail SubscribeScanEvents", "error", err)
		return nil, err
	}
	ch := make(chan *models.ScanEvent, 100)

	// goroutine to listen
	go func() {
		defer close(ch)
		defer func(pubsub *redis.PubSub) {
			err := pubsub.Close()
			if err != nil {
				logging.Logger.Error("fail SubscribeScanEvents", "error", err)
			}
		}(pubsub)

		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-pubsub.Channel():
				var event models.ScanEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logging.Logger.Error("Failed to unmarshal event", "error", err)
					continue
				}

				select {
				case ch <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
