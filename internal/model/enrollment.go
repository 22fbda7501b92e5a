package model

import "time"

type Enrollment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	PaymentID *int      `json:"payment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
