package apiclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/session"

	"github.com/go-resty/resty/v2"
)

var ErrUnsuccessful = errors.New("request unsuccessful")

// Client talks to the Learnhub API on behalf of a session.
type Client struct {
	rest    *resty.Client
	session session.Session
}

func New(baseURL string, sess session.Session) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{rest: rest, session: sess}
}

// WithSession returns a client sharing the transport but acting for sess.
func (c *Client) WithSession(sess session.Session) *Client {
	return &Client{rest: c.rest, session: sess}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rest.R().SetContext(ctx)
	if c.session.Token != "" {
		req.SetAuthToken(c.session.Token)
	}
	return req
}

// ListCourses fetches every course.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var body model.CourseListResponse
	resp, err := c.request(ctx).
		SetResult(&body).
		SetError(&body).
		Get("/api/user/getallcourses")
	if err != nil {
		return nil, fmt.Errorf("fetching courses: %w", err)
	}

	if !body.Success {
		return nil, fmt.Errorf("fetching courses: %w: status %d %s", ErrUnsuccessful, resp.StatusCode(), body.Message)
	}

	if body.Data == nil {
		return []model.Course{}, nil
	}
	return body.Data, nil
}

// Enroll posts the card details for a course. A decoded envelope is returned
// even when the server refuses the enrollment; only transport failures and
// responses without an envelope are errors.
func (c *Client) Enroll(ctx context.Context, courseID int, card model.CardDetails) (model.EnrollResponse, error) {
	var body model.EnrollResponse
	resp, err := c.request(ctx).
		SetBody(card).
		SetResult(&body).
		SetError(&body).
		Post("/api/user/enrolledcourse/" + strconv.Itoa(courseID))
	if err != nil {
		return model.EnrollResponse{}, fmt.Errorf("enrolling in course %d: %w", courseID, err)
	}

	if resp.IsError() && !body.Success && body.Message == "" {
		return model.EnrollResponse{}, fmt.Errorf("enrolling in course %d: status %d: %s", courseID, resp.StatusCode(), resp.String())
	}

	return body, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	var body model.SignInResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&body).
		SetError(&body).
		Post("/api/user/login")
	if err != nil {
		return session.Session{}, fmt.Errorf("signing in: %w", err)
	}

	if !body.Success || body.User == nil {
		return session.Session{}, fmt.Errorf("signing in: %w: status %d %s", ErrUnsuccessful, resp.StatusCode(), body.Message)
	}

	return session.Session{Token: body.Token, User: body.User}, nil
}

// EnrolledCourses lists the courses the session's user is enrolled in.
func (c *Client) EnrolledCourses(ctx context.Context) ([]model.Course, error) {
	var body model.CourseListResponse
	resp, err := c.request(ctx).
		SetResult(&body).
		SetError(&body).
		Get("/api/user/enrolledcourses")
	if err != nil {
		return nil, fmt.Errorf("fetching enrolled courses: %w", err)
	}

	if !body.Success {
		return nil, fmt.Errorf("fetching enrolled courses: %w: status %d %s", ErrUnsuccessful, resp.StatusCode(), body.Message)
	}

	return body.Data, nil
}
