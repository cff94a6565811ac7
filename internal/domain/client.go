package domain

import "time"

// Client is a rental customer. Owned by the surrounding CRUD application;
// the engine only reads it for calendar labels and analytics.
type Client struct {
	ID            int32     `json:"id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
}
