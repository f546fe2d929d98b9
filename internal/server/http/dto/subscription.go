package dto

import "time"

// SubscriptionRequest describes a stock alert subscription.
type SubscriptionRequest struct {
	BookID    int64 `json:"book_id"`
	Threshold int64 `json:"threshold"`
}

// SubscriptionResponse describes a stored subscription.
type SubscriptionResponse struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	Threshold int64     `json:"threshold"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
