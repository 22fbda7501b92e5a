package model

import "learnhub/internal/pricing"

type Course struct {
	ID         int           `json:"id"`
	Title      string        `json:"title"`
	Educator   string        `json:"educator"`
	Categories []string      `json:"categories"`
	Price      pricing.Price `json:"price"`
	Enrolled   int           `json:"enrolled"`
}
