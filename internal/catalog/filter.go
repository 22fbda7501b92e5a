package catalog

import (
	"fmt"
	"strings"

	"learnhub/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type selects courses by price classification.
type Type string

const (
	All  Type = ""
	Free Type = "Free"
	Paid Type = "Paid"
)

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "free":
		return Free, nil
	case "paid":
		return Paid, nil
	default:
		return All, fmt.Errorf("unknown course type %q", s)
	}
}

type Filter struct {
	Title string
	Type  Type
}

// Row is a course that passed the filter. Index is the course's position in
// the fetched list, not in the filtered result.
type Row struct {
	Index  int
	Course model.Course
}

// Apply keeps the courses whose title contains the query, ignoring case, and
// whose price matches the type. Order is preserved.
func (f Filter) Apply(courses []model.Course) []Row {
	lower := cases.Lower(language.Und)
	query := lower.String(f.Title)

	rows := make([]Row, 0, len(courses))
	for i, course := range courses {
		if query != "" && !strings.Contains(lower.String(course.Title), query) {
			continue
		}
		if !f.Type.matches(course) {
			continue
		}
		rows = append(rows, Row{Index: i, Course: course})
	}

	return rows
}

func (t Type) matches(course model.Course) bool {
	switch t {
	case Free:
		return course.Price.IsFree()
	case Paid:
		return !course.Price.IsFree()
	default:
		return true
	}
}
