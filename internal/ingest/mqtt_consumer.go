package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hivewatch/internal/mqtt"
	"hivewatch/internal/service"

	"go.uber.org/zap"
)

const handleTimeout = 10 * time.Second

// MQTTConsumer bridges device publishes into the ingestion path. Payloads
// follow the same wire format as POST /data, so a device can switch
// transports without changing its message body.
type MQTTConsumer struct {
	client   *mqtt.Client
	readings *service.ReadingsService
	logger   *zap.Logger
	topic    string
}

func NewMQTTConsumer(client *mqtt.Client, readings *service.ReadingsService, logger *zap.Logger) *MQTTConsumer {
	return &MQTTConsumer{
		client:   client,
		readings: readings,
		logger:   logger,
	}
}

// Start subscribes to the topic filter and ingests until Stop.
func (c *MQTTConsumer) Start(topic string, qos byte) error {
	if err := c.client.Subscribe(topic, qos, c.handleMessage); err != nil {
		return fmt.Errorf("failed to start MQTT consumer: %w", err)
	}
	c.topic = topic
	c.logger.Info("MQTT consumer started", zap.String("topic", topic), zap.Uint8("qos", qos))
	return nil
}

// Stop unsubscribes before disconnecting so the broker drops the
// subscription instead of queueing for a clean-session reconnect.
func (c *MQTTConsumer) Stop() {
	if c.topic != "" {
		if err := c.client.Unsubscribe(c.topic); err != nil {
			c.logger.Warn("failed to unsubscribe", zap.String("topic", c.topic), zap.Error(err))
		}
	}
	c.client.Disconnect()
}

func (c *MQTTConsumer) handleMessage(topic string, payload []byte) error {
	var p service.ReadingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("malformed payload on %s: %w", topic, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	rd, err := c.readings.Ingest(ctx, p)
	if errors.Is(err, service.ErrValidation) {
		// Incomplete samples are dropped, not retried.
		c.logger.Warn("dropping invalid device payload",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return nil
	}
	if err != nil {
		return err
	}

	c.logger.Debug("reading ingested from MQTT",
		zap.String("topic", topic),
		zap.Int64("id", rd.ID),
	)
	return nil
}
