package model

import "time"

type Payment struct {
	ID         int       `json:"id"`
	ProviderID string    `json:"provider_id"`
	UserID     int       `json:"user_id"`
	CourseID   int       `json:"course_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	LastFour   string    `json:"last_four"`
	CreatedAt  time.Time `json:"created_at"`
}
