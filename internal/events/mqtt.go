package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// mqttClient is the subset of the MQTT wrapper the publisher needs.
type mqttClient interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

// MQTTPublisher publishes events to <topicPrefix>/<yardID>/slots/<slotID>.
type MQTTPublisher struct {
	client      mqttClient
	topicPrefix string
	qos         byte
}

func NewMQTTPublisher(client mqttClient, topicPrefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{
		client:      client,
		topicPrefix: strings.TrimSuffix(topicPrefix, "/"),
		qos:         qos,
	}
}

// Topic returns the topic an event for yardID/slotID is published on.
func (p *MQTTPublisher) Topic(yardID, slotID string) string {
	return fmt.Sprintf("%s/%s/slots/%s", p.topicPrefix, yardID, slotID)
}

// Publish gives up when ctx ends, even if the broker has not acked yet.
func (p *MQTTPublisher) Publish(ctx context.Context, e SlotEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal slot event: %w", err)
	}
	return p.client.Publish(ctx, p.Topic(e.YardID, e.SlotID), p.qos, false, payload)
}
