package domain

import "time"

type NotificationCategory string

const (
	NotificationCategoryMaintenance NotificationCategory = "maintenance"
	NotificationCategoryRental      NotificationCategory = "rental"
	NotificationCategoryPayment     NotificationCategory = "payment"
	NotificationCategoryDocument    NotificationCategory = "document"
)

// Notification is an alert record for one user. Produced by the deadline
// sweep (and other event producers); only the read flag is ever mutated.
type Notification struct {
	ID        int32                `json:"id"`
	UserID    int32                `json:"user_id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"category"`
	IsRead    bool                 `json:"is_read"`
	CreatedAt time.Time            `json:"created_at"`
}
