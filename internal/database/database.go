package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"learnhub/internal/model"
	"learnhub/internal/pricing"
	"time"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrEmailTaken      = errors.New("email already registered")
)

// unique_violation
const uniqueViolation = "23505"

type Client interface {
	Close()
	CreateUser(name, email, password string) (model.User, error)
	GetUsers() ([]model.User, error)
	GetUserByEmail(email string) (model.User, error)
	GetUserByID(id int) (model.User, error)
	CheckPassword(email, password string) (model.User, error)
	GetCourses() ([]model.Course, error)
	GetCourseByID(id int) (model.Course, error)
	GetSections(courseID int) ([]model.Section, error)
	IsEnrolled(userID, courseID int) (bool, error)
	LockEnrollment(ctx context.Context, userID, courseID int) (func(), error)
	Enroll(userID, courseID int, payment *model.Payment) (model.Enrollment, error)
	GetEnrolledCourses(userID int) ([]model.Course, error)
}

type client struct {
	db *sql.DB
}

func NewClient(connStr string) (Client, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &client{db: db}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

func (c *client) CreateUser(name, email, password string) (model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	query := `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, name, email, role`
	var user model.User
	err = c.db.QueryRow(query, name, email, hashedPassword).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("executing user insert and returning data: %w", err)
	}

	return user, nil
}

func (c *client) GetUsers() ([]model.User, error) {
	rows, err := c.db.Query("SELECT id, name, email, role FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (c *client) GetUserByEmail(email string) (model.User, error) {
	query := `SELECT id, name, email, role, password FROM users WHERE email = $1`
	var user model.User
	err := c.db.QueryRow(query, email).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, fmt.Errorf("no user found with email %s: %w", email, ErrNotFound)
		}
		return model.User{}, fmt.Errorf("querying for user by email: %w", err)
	}

	return user, nil
}

func (c *client) GetUserByID(id int) (model.User, error) {
	query := `SELECT id, name, email, role FROM users WHERE id = $1`
	var user model.User
	err := c.db.QueryRow(query, id).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, fmt.Errorf("no user found with id %d: %w", id, ErrNotFound)
		}
		return model.User{}, fmt.Errorf("querying for user by id: %w", err)
	}

	return user, nil
}

// CheckPassword returns the user when the password matches the stored hash.
func (c *client) CheckPassword(email, password string) (model.User, error) {
	user, err := c.GetUserByEmail(email)
	if err != nil {
		return model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return model.User{}, fmt.Errorf("comparing password for %s: %w", email, ErrNotFound)
	}

	user.Password = ""
	return user, nil
}

const courseColumns = `c.id, c.title, c.educator, c.categories, c.price, c.enrolled`

func scanCourse(row interface{ Scan(...any) error }) (model.Course, error) {
	var course model.Course
	var price string
	err := row.Scan(&course.ID, &course.Title, &course.Educator, pq.Array(&course.Categories), &price, &course.Enrolled)
	if err != nil {
		return model.Course{}, err
	}
	course.Price = pricing.Parse(price)
	return course, nil
}

func (c *client) queryCourses(query string, args ...any) ([]model.Course, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (c *client) GetCourses() ([]model.Course, error) {
	return c.queryCourses(`SELECT ` + courseColumns + ` FROM courses c ORDER BY c.id`)
}

func (c *client) GetCourseByID(id int) (model.Course, error) {
	row := c.db.QueryRow(`SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id)
	course, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Course{}, fmt.Errorf("no course found with id %v: %w", id, ErrNotFound)
		}
		return model.Course{}, fmt.Errorf("querying for course by id: %w", err)
	}

	return course, nil
}

func (c *client) GetSections(courseID int) ([]model.Section, error) {
	rows, err := c.db.Query(
		`SELECT id, course_id, sequence, title, content_url, is_free FROM sections WHERE course_id = $1 ORDER BY sequence`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	sections := []model.Section{}
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Sequence, &s.Title, &s.ContentURL, &s.IsFree); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, s)
	}

	return sections, rows.Err()
}

func (c *client) IsEnrolled(userID, courseID int) (bool, error) {
	var exists bool
	err := c.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking enrollment: %w", err)
	}

	return exists, nil
}

// LockEnrollment takes a Postgres advisory lock on the (user, course) pair so
// that only one request at a time can charge and enroll it, across every
// server instance. The returned func releases the lock.
func (c *client) LockEnrollment(ctx context.Context, userID, courseID int) (func(), error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1::int, $2::int)`, userID, courseID); err != nil {
		if err := conn.Close(); err != nil {
			log.Errorf("closing connection: %v", err)
		}
		return nil, fmt.Errorf("locking enrollment: %w", err)
	}

	return func() {
		_, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1::int, $2::int)`, userID, courseID)
		if err != nil {
			log.Errorf("unlocking enrollment %d/%d: %v", userID, courseID, err)
			// a session still holding the lock must not go back to the pool
			_ = conn.Raw(func(any) error { return driver.ErrBadConn })
			return
		}
		if err := conn.Close(); err != nil {
			log.Errorf("closing connection: %v", err)
		}
	}, nil
}

// Enroll records the enrollment, the optional payment and bumps the course's
// enrolled counter in one transaction.
func (c *client) Enroll(userID, courseID int, payment *model.Payment) (model.Enrollment, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("starting enrollment transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Errorf("rolling back enrollment: %v", err)
		}
	}()

	enrollment := model.Enrollment{UserID: userID, CourseID: courseID, CreatedAt: time.Now()}

	if payment != nil {
		payment.UserID = userID
		payment.CourseID = courseID
		payment.CreatedAt = enrollment.CreatedAt

		err = tx.QueryRow(
			`INSERT INTO payments (provider_id, user_id, course_id, amount, currency, status, last_four, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			payment.ProviderID,
			payment.UserID,
			payment.CourseID,
			payment.Amount,
			payment.Currency,
			payment.Status,
			payment.LastFour,
			payment.CreatedAt,
		).Scan(&payment.ID)
		if err != nil {
			return model.Enrollment{}, fmt.Errorf("unable to add payment: %w", err)
		}
		enrollment.PaymentID = &payment.ID
	}

	err = tx.QueryRow(
		`INSERT INTO enrollments (user_id, course_id, payment_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.PaymentID,
		enrollment.CreatedAt,
	).Scan(&enrollment.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.Enrollment{}, ErrAlreadyEnrolled
		}
		return model.Enrollment{}, fmt.Errorf("unable to add enrollment: %w", err)
	}

	if _, err = tx.Exec(`UPDATE courses SET enrolled = enrolled + 1 WHERE id = $1`, courseID); err != nil {
		return model.Enrollment{}, fmt.Errorf("incrementing enrolled count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return model.Enrollment{}, fmt.Errorf("committing enrollment: %w", err)
	}

	return enrollment, nil
}

func (c *client) GetEnrolledCourses(userID int) ([]model.Course, error) {
	return c.queryCourses(
		`SELECT `+courseColumns+`
		 FROM enrollments e
		 INNER JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at`,
		userID,
	)
}
