package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/krisdikachi/Plancer/utils"
)

// StartKafkaConsumer drains the RSVP-confirmed topic and turns each message
// into a confirmation email. No-op when Kafka is not configured, the RSVP
// path falls back to inline dispatch in that case.
func StartKafkaConsumer(svc Service) {
	if !utils.KafkaEnabled() {
		log.Println("ℹ️ Kafka disabled, RSVP confirmations dispatch inline")
		return
	}

	go func() {
		reader := utils.NewRSVPReader()
		defer reader.Close()

		log.Println("✅ Kafka consumer started for topic:", utils.RSVPTopic)

		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("❌ Kafka read error: %v\n", err)
				return
			}

			var evt RSVPConfirmedEvent
			if err := json.Unmarshal(msg.Value, &evt); err != nil {
				log.Printf("⚠️ Skipping malformed RSVP message (offset %d): %v\n", msg.Offset, err)
				continue
			}

			if _, err := svc.SendConfirmationEmail(evt.Email, evt.EventTitle, evt.FullName); err != nil {
				log.Printf("⚠️ Confirmation dispatch failed for %s: %v\n", evt.Email, err)
			}
		}
	}()
}
