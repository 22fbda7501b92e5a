//go:build integration

package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"learnhub/internal/database"
	"learnhub/internal/model"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *Server

const baseURL = "http://localhost:8080"

func cleanupDB() {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBCon)
	if err != nil {
		log.Fatalf("Error opening connection to the database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec("TRUNCATE enrollments, payments, sections, courses, users RESTART IDENTITY CASCADE;")
	if err != nil {
		log.Fatalf("Error cleaning up tables: %v", err)
	}
}

func TestMain(m *testing.M) {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	db, err := database.NewClient(cfg.DBCon)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}

	server = NewServer(port, db, cfg.JWTKey)

	go func() {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Allow some time for the server to start
	time.Sleep(100 * time.Millisecond)

	exitVal := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server Shutdown Failed:%+v", err)
	}
	db.Close()

	os.Exit(exitVal)
}

func signUpAndIn(t *testing.T) string {
	createUserBody, _ := json.Marshal(CreateUserRequest{Name: "Test", Email: "my_test_user@example.com", Password: "my_test_password"})
	resp, err := http.Post(baseURL+"/api/user/register", "application/json", bytes.NewBuffer(createUserBody))
	if err != nil {
		t.Fatalf("Could not send POST request to create user: %v", err)
	}
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	signinBody, _ := json.Marshal(SignInRequest{Email: "my_test_user@example.com", Password: "my_test_password"})
	resp, err = http.Post(baseURL+"/api/user/login", "application/json", bytes.NewBuffer(signinBody))
	if err != nil {
		t.Fatalf("Could not send POST request to sign in: %v", err)
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var signIn model.SignInResponse
	if err := json.NewDecoder(resp.Body).Decode(&signIn); err != nil {
		t.Fatalf("Could not decode sign in response: %v", err)
	}
	return signIn.Token
}

func authed(t *testing.T, method, url, token string) *http.Response {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("Could not create request: %v", err)
	}
	req.Header.Add("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Could not send request: %v", err)
	}
	return resp
}

func TestIntegrationGetCourses(t *testing.T) {
	resp, err := http.Get(baseURL + "/courses")
	if err != nil {
		t.Fatalf("Could not send GET request: %v", err)
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIntegrationEnrollFreeCourse(t *testing.T) {
	cleanupDB()
	token := signUpAndIn(t)

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBCon)
	if err != nil {
		log.Fatalf("Error opening connection to the database: %v", err)
	}
	defer db.Close()

	row := db.QueryRow("INSERT INTO courses (title, educator, price) VALUES ('Intro to Programming', 'Ada', 'Free') RETURNING id")
	var id int
	if err := row.Scan(&id); err != nil {
		t.Fatalf("Failed to retrieve id: %v", err)
	}

	resp := authed(t, http.MethodPost, fmt.Sprintf("%s/api/user/enrolledcourse/%d", baseURL, id), token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authed(t, http.MethodPost, fmt.Sprintf("%s/api/user/enrolledcourse/%d", baseURL, id), token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = authed(t, http.MethodGet, baseURL+"/api/user/enrolledcourses", token)
	var enrolled model.CourseListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&enrolled))
	require.Len(t, enrolled.Data, 1)
	assert.Equal(t, 1, enrolled.Data[0].Enrolled)
}
