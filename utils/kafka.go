package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var rsvpWriter *kafka.Writer

// RSVPTopic is the topic carrying confirmed RSVPs for async notification dispatch.
var RSVPTopic = "plancer.rsvp.confirmed"

// InitializeKafka sets up the producer. Kafka is optional: when KAFKA_BROKERS
// is unset, publishes become no-ops and confirmation emails are sent inline
// by the caller.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("ℹ️ Kafka not configured (KAFKA_BROKERS missing), RSVP events will be dispatched inline")
		return
	}
	if topic := os.Getenv("KAFKA_RSVP_TOPIC"); topic != "" {
		RSVPTopic = topic
	}

	rsvpWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        RSVPTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Printf("✅ Kafka producer initialized (topic: %s)", RSVPTopic)
}

// KafkaEnabled reports whether the producer is available.
func KafkaEnabled() bool {
	return rsvpWriter != nil
}

// PublishJSON marshals v and writes it to the RSVP topic with the given key.
func PublishJSON(ctx context.Context, key string, v interface{}) error {
	if rsvpWriter == nil {
		return nil
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return rsvpWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// NewRSVPReader builds a consumer for the RSVP topic.
func NewRSVPReader() *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		GroupID:  "plancer-notifications",
		Topic:    RSVPTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
