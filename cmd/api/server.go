package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"learnhub/internal/database"
	"learnhub/internal/payments"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
)

// Notifier sends account and enrollment e-mails.
type Notifier interface {
	SendRegistrationEmail(name, email string) error
	SendEnrollmentEmail(name, email, courseTitle string) error
}

type Server struct {
	port           int
	db             database.Client
	jwtKey         string
	payments       payments.Gateway
	notifier       Notifier
	nr             *newrelic.Application
	allowedOrigins []string
	validate       *validator.Validate
	httpServer     *http.Server
}

type Option func(*Server)

func WithPayments(g payments.Gateway) Option {
	return func(s *Server) { s.payments = g }
}

func WithNotifier(n Notifier) Option {
	return func(s *Server) { s.notifier = n }
}

func WithNewRelic(app *newrelic.Application) Option {
	return func(s *Server) { s.nr = app }
}

func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

func NewServer(port int, db database.Client, jwtKey string, opts ...Option) *Server {
	s := &Server{
		port:           port,
		db:             db,
		jwtKey:         jwtKey,
		payments:       payments.NewRecorder(),
		allowedOrigins: []string{"*"},
		validate:       validator.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	s.route(router, "/api/user/register", s.createUser, http.MethodPost)
	s.route(router, "/api/user/login", s.signIn, http.MethodPost)
	s.route(router, "/users", s.authenticate(s.listUsers), http.MethodGet)

	s.route(router, "/courses", s.listCourses, http.MethodGet)
	s.route(router, "/api/user/getallcourses", s.authenticate(s.getAllCourses), http.MethodGet)
	s.route(router, "/api/user/courses/{id:[0-9]+}", s.authenticate(s.getCourse), http.MethodGet)
	s.route(router, "/api/user/enrolledcourse/{id:[0-9]+}", s.authenticate(s.enrollCourse), http.MethodPost)
	s.route(router, "/api/user/enrolledcourses", s.authenticate(s.listEnrolledCourses), http.MethodGet)
	s.route(router, "/api/user/coursesection/{id:[0-9]+}", s.authenticate(s.listSections), http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return cors(handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), withRequestID(router)))
}

func (s *Server) route(router *mux.Router, pattern string, h http.HandlerFunc, methods ...string) {
	router.HandleFunc(newrelic.WrapHandleFunc(s.nr, pattern, h)).Methods(methods...)
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%v:%v", address, s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening requests at %v:%v", address, s.port)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger(r).Errorf("encoding response: %v", err)
	}
}
