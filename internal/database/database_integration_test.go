//go:build integration

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDatabase(t *testing.T) Client {
	c, err := NewClient("user=ps_user password=ps_password dbname=backend sslmode=disable host=localhost")
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	t.Cleanup(func() {
		c.Close()
	})

	// Clean up the tables touched by these tests
	if _, err = c.(*client).db.Exec("TRUNCATE enrollments, payments, sections, courses, users RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Failed to clean up tables: %v", err)
	}

	return c
}

func insertCourse(t *testing.T, c Client, title, price string) int {
	var id int
	err := c.(*client).db.QueryRow(
		`INSERT INTO courses (title, educator, categories, price) VALUES ($1, 'Ada', '{go,web}', $2) RETURNING id`,
		title, price,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert course: %v", err)
	}
	return id
}

func TestConnect(t *testing.T) {
	db := setupDatabase(t)
	assert.NotNil(t, db)
}

func TestCreateUser(t *testing.T) {
	db := setupDatabase(t)

	email := "TestUser@test.com"
	password := "TestPassword"

	user, err := db.CreateUser("Test User", email, password)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	assert.Equal(t, email, user.Email)
	assert.Equal(t, "student", user.Role)

	_, err = db.CreateUser("Again", email, password)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUsers(t *testing.T) {
	db := setupDatabase(t)

	email := "TestUser@test.com"
	_, err := db.CreateUser("Test User", email, "TestPassword")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	users, err := db.GetUsers()
	if err != nil {
		t.Fatalf("Failed to fetch users: %v", err)
	}

	found := false
	for _, user := range users {
		if user.Email == email {
			found = true
			break
		}
	}

	assert.True(t, found, "The user was not found in the database")
}

func TestCheckPassword(t *testing.T) {
	db := setupDatabase(t)

	_, err := db.CreateUser("Test User", "login@test.com", "secret")
	require.NoError(t, err)

	user, err := db.CheckPassword("login@test.com", "secret")
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	_, err = db.CheckPassword("login@test.com", "wrong")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetCourses(t *testing.T) {
	db := setupDatabase(t)

	insertCourse(t, db, "Intro to X", "Free")
	insertCourse(t, db, "Advanced Y", "$49.99")

	courses, err := db.GetCourses()
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.True(t, courses[0].Price.IsFree())
	assert.Equal(t, []string{"go", "web"}, courses[0].Categories)
	assert.Equal(t, int64(4999), courses[1].Price.Amount)

	_, err = db.GetCourseByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnroll(t *testing.T) {
	db := setupDatabase(t)

	user, err := db.CreateUser("Student", "student@test.com", "pw")
	require.NoError(t, err)
	courseID := insertCourse(t, db, "Advanced Y", "$10")

	payment := &model.Payment{ProviderID: "recorded_1", Amount: 1000, Currency: "USD", Status: "succeeded", LastFour: "4242"}
	enrollment, err := db.Enroll(user.ID, courseID, payment)
	require.NoError(t, err)
	require.NotNil(t, enrollment.PaymentID)
	assert.Equal(t, payment.ID, *enrollment.PaymentID)

	enrolled, err := db.IsEnrolled(user.ID, courseID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	_, err = db.Enroll(user.ID, courseID, nil)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	course, err := db.GetCourseByID(courseID)
	require.NoError(t, err)
	assert.Equal(t, 1, course.Enrolled)

	courses, err := db.GetEnrolledCourses(user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Advanced Y", courses[0].Title)
}

func TestLockEnrollment(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()

	unlock, err := db.LockEnrollment(ctx, 1, 2)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := db.LockEnrollment(ctx, 1, 2)
		if err == nil {
			second()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first is held")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second lock never acquired")
	}

	other, err := db.LockEnrollment(ctx, 1, 3)
	require.NoError(t, err)
	other()
}
