package model

type Section struct {
	ID         int    `json:"id"`
	CourseID   int    `json:"course_id"`
	Sequence   int    `json:"sequence"`
	Title      string `json:"title"`
	ContentURL string `json:"content_url"`
	IsFree     bool   `json:"is_free"`
}
