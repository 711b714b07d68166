package notification

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/krisdikachi/Plancer/config"
)

// FCMChannel implements the Channel interface for Firebase Cloud Messaging.
// Recipients are device tokens; subject is the notification title.
type FCMChannel struct {
	client *messaging.Client
	ctx    context.Context
}

// NewFCMChannel initializes FCM with service account credentials. A missing
// or broken credential file degrades to a nil client: pushes fail softly
// instead of taking the process down.
func NewFCMChannel(cfg *config.Config) *FCMChannel {
	ctx := context.Background()

	if cfg.FCMCredentialsPath == "" {
		log.Println("⚠️  FCM not configured (FCM_CREDENTIALS_PATH missing)")
		return &FCMChannel{client: nil, ctx: ctx}
	}

	opt := option.WithCredentialsFile(cfg.FCMCredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Printf("❌ Error initializing Firebase app: %v\n", err)
		return &FCMChannel{client: nil, ctx: ctx}
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("❌ Error getting FCM client: %v\n", err)
		return &FCMChannel{client: nil, ctx: ctx}
	}

	log.Println("✅ FCM initialized successfully for project:", cfg.FCMProjectID)
	return &FCMChannel{
		client: client,
		ctx:    ctx,
	}
}

// Enabled reports whether push delivery is available.
func (f *FCMChannel) Enabled() bool {
	return f.client != nil
}

// Send implements Channel for FCM
func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(recipients[0], subject, body)
	}

	return f.sendMulticast(recipients, subject, body)
}

func (f *FCMChannel) sendSingle(token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "plancer_notifications",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
				Icon:  "/icon-192x192.png",
			},
		},
	}

	response, err := f.client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("✅ FCM message sent successfully: %s\n", response)
	return nil
}

func (f *FCMChannel) sendMulticast(tokens []string, title, body string) error {
	// FCM allows max 500 tokens per multicast
	batchSize := 500
	var failedTokens []string
	successCount := 0

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}

		batch := tokens[i:end]
		message := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:        "default",
					ChannelID:    "plancer_notifications",
					Priority:     messaging.PriorityHigh,
					DefaultSound: true,
				},
			},
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
						Badge: intPtr(1),
					},
				},
			},
		}

		response, err := f.client.SendMulticast(f.ctx, message)
		if err != nil {
			log.Printf("❌ Error sending FCM multicast batch: %v\n", err)
			failedTokens = append(failedTokens, batch...)
			continue
		}

		successCount += response.SuccessCount

		if response.FailureCount > 0 {
			for idx, resp := range response.Responses {
				if !resp.Success {
					failedTokens = append(failedTokens, batch[idx])
				}
			}
		}
	}

	if len(failedTokens) > 0 {
		return fmt.Errorf("failed to send to %d/%d tokens", len(failedTokens), len(tokens))
	}

	log.Printf("✅ All FCM messages sent: %d tokens\n", successCount)
	return nil
}

func intPtr(i int) *int {
	return &i
}
