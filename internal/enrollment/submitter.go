package enrollment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"learnhub/internal/model"

	log "github.com/sirupsen/logrus"
)

const fallbackMessage = "Enrollment failed"

var (
	ErrSubmitInProgress = errors.New("enrollment already in progress")
	ErrRejected         = errors.New("enrollment rejected")
)

type State int

const (
	Idle State = iota
	Submitting
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Enroller interface {
	Enroll(ctx context.Context, courseID int, card model.CardDetails) (model.EnrollResponse, error)
}

// Alerter shows a message to the user.
type Alerter interface {
	Alert(message string)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(path string)
}

type Submitter struct {
	enroller  Enroller
	alerter   Alerter
	navigator Navigator

	mu    sync.Mutex
	state State
}

func NewSubmitter(enroller Enroller, alerter Alerter, navigator Navigator) *Submitter {
	return &Submitter{enroller: enroller, alerter: alerter, navigator: navigator}
}

// CoursePath is the content route for an enrolled course.
func CoursePath(courseID int, title string) string {
	return "/courseSection/" + strconv.Itoa(courseID) + "/" + url.PathEscape(title)
}

// Submit enrolls the user in a course. Free enrollments send an empty card.
// A second call while one is in flight returns ErrSubmitInProgress without
// contacting the server.
func (s *Submitter) Submit(ctx context.Context, courseID int, card model.CardDetails, isFree bool) error {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return ErrSubmitInProgress
	}
	s.state = Submitting
	s.mu.Unlock()

	if isFree {
		card = model.CardDetails{}
	}

	err := s.submit(ctx, courseID, card)

	s.mu.Lock()
	if err != nil {
		s.state = Failed
	} else {
		s.state = Done
	}
	s.mu.Unlock()

	return err
}

func (s *Submitter) submit(ctx context.Context, courseID int, card model.CardDetails) error {
	resp, err := s.enroller.Enroll(ctx, courseID, card)
	if err != nil {
		log.Errorf("enroll error: %v", err)
		return err
	}

	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = fallbackMessage
		}
		s.alerter.Alert(message)
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}

	s.alerter.Alert(resp.Message)

	if resp.Course == nil {
		log.Warnf("enrollment in course %d succeeded without course details", courseID)
		return nil
	}

	s.navigator.Navigate(CoursePath(resp.Course.ID, resp.Course.Title))
	return nil
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
