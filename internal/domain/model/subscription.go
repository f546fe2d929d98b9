package model

import "time"

// NotificationSubscription asks for an alert once a book's stock falls to or
// below Threshold.
type NotificationSubscription struct {
	ID        int64
	UserID    int64
	BookID    int64
	Threshold int64
	Active    bool
	CreatedAt time.Time
}

// SubscriptionTarget is an active subscription joined with its recipient.
type SubscriptionTarget struct {
	NotificationSubscription
	Email string
}

// NotificationLog records a delivered stock alert.
type NotificationLog struct {
	ID             int64
	SubscriptionID int64
	UserID         int64
	BookID         int64
	Threshold      int64
	CurrentStock   int64
	Message        string
	SentAt         time.Time
}

// StockAlert is a rendered stock notification handed to the delivery channel.
type StockAlert struct {
	SubscriptionID int64  `json:"subscription_id"`
	UserID         int64  `json:"user_id"`
	BookID         int64  `json:"book_id"`
	Recipient      string `json:"recipient"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	CurrentStock   int64  `json:"current_stock"`
}
