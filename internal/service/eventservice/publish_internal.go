package eventservice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wagslane/go-rabbitmq"
)

func (p *MQPublisher) publishJSON(ctx context.Context, routingKey, messageID string, msg any, headers rabbitmq.Table) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	err = p.pub.PublishWithContext(ctx, body, []string{routingKey},
		rabbitmq.WithPublishOptionsExchange(ExchangeName),
		rabbitmq.WithPublishOptionsContentType("application/json"),
		rabbitmq.WithPublishOptionsPersistentDelivery,
		rabbitmq.WithPublishOptionsMessageID(messageID),
		rabbitmq.WithPublishOptionsTimestamp(time.Now()),
		rabbitmq.WithPublishOptionsHeaders(headers),
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}
