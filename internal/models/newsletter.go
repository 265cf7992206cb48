package models

import (
	"time"
)

// NewsletterSubscriber represents a newsletter signup
type NewsletterSubscriber struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	SubscribedAt time.Time `json:"subscribed_at" db:"subscribed_at"`
}

// SubscribeRequest is the payload for newsletter subscribe/unsubscribe
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}
