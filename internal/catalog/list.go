package catalog

import (
	"context"
	"errors"
	"sync"

	"learnhub/internal/model"

	log "github.com/sirupsen/logrus"
)

var ErrLoadInProgress = errors.New("course list is already loading")

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Source interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
}

// List holds the fetched catalog and the state of the last fetch.
type List struct {
	source Source

	mu      sync.Mutex
	state   State
	courses []model.Course
	err     error
}

func NewList(source Source) *List {
	return &List{source: source, courses: []model.Course{}}
}

// Load fetches the whole catalog. On failure the previous courses are kept.
func (l *List) Load(ctx context.Context) ([]model.Course, error) {
	l.mu.Lock()
	if l.state == Loading {
		l.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	l.state = Loading
	l.mu.Unlock()

	courses, err := l.source.ListCourses(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		log.Errorf("get courses: %v", err)
		l.state = Failed
		l.err = err
		return nil, err
	}

	l.state = Loaded
	l.err = nil
	l.courses = courses
	return l.snapshot(), nil
}

// Courses returns a copy of the last loaded list.
func (l *List) Courses() []model.Course {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *List) snapshot() []model.Course {
	out := make([]model.Course, len(l.courses))
	copy(out, l.courses)
	return out
}

func (l *List) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *List) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
