package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"learnhub/internal/database"
	"learnhub/internal/model"
	"learnhub/internal/payments"

	"github.com/gorilla/mux"
)

// listCourses returns every course as a bare array.
func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.GetCourses()
	if err != nil {
		logger(r).Errorf("listing courses: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.MessageResponse{Message: err.Error()})
		return
	}

	writeJSON(w, r, http.StatusOK, courses)
}

func (s *Server) getAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.GetCourses()
	if err != nil {
		logger(r).Errorf("listing courses: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.CourseListResponse{Message: "Could not load courses", Data: []model.Course{}})
		return
	}

	writeJSON(w, r, http.StatusOK, model.CourseListResponse{Success: true, Data: courses})
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	course, err := s.db.GetCourseByID(id)
	if err != nil {
		s.courseLookupFailed(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.CourseResponse{Success: true, Data: course})
}

func (s *Server) enrollCourse(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	courseID, _ := strconv.Atoi(mux.Vars(r)["id"])
	entry := logger(r).WithField("course_id", courseID).WithField("user_id", userID)

	var card model.CardDetails
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, r, http.StatusBadRequest, model.EnrollResponse{Message: "Invalid card details"})
		return
	}

	course, err := s.db.GetCourseByID(courseID)
	if err != nil {
		s.courseLookupFailed(w, r, err)
		return
	}

	unlock, err := s.db.LockEnrollment(r.Context(), userID, courseID)
	if err != nil {
		entry.Errorf("locking enrollment: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.EnrollResponse{Message: "Enrollment failed"})
		return
	}
	defer unlock()

	enrolled, err := s.db.IsEnrolled(userID, courseID)
	if err != nil {
		entry.Errorf("checking enrollment: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.EnrollResponse{Message: "Enrollment failed"})
		return
	}
	if enrolled {
		writeJSON(w, r, http.StatusConflict, model.EnrollResponse{Message: "Already enrolled"})
		return
	}

	var payment *model.Payment
	if !course.Price.IsFree() {
		payment, err = s.payments.Charge(r.Context(), payments.ChargeRequest{
			Price:       course.Price,
			Card:        card,
			Description: fmt.Sprintf("Enrollment in %s", course.Title),
		})
		if err != nil {
			entry.Warnf("charging card: %v", err)
			writeJSON(w, r, http.StatusPaymentRequired, model.EnrollResponse{Message: "Payment failed"})
			return
		}
	}

	if _, err := s.db.Enroll(userID, courseID, payment); err != nil {
		if payment != nil {
			entry = entry.WithField("payment", payment.ProviderID)
			entry.Errorf("charge %s has no enrollment", payment.ProviderID)
		}
		if errors.Is(err, database.ErrAlreadyEnrolled) {
			writeJSON(w, r, http.StatusConflict, model.EnrollResponse{Message: "Already enrolled"})
			return
		}
		entry.Errorf("recording enrollment: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.EnrollResponse{Message: "Enrollment failed"})
		return
	}

	if s.notifier != nil {
		user, err := s.db.GetUserByID(userID)
		if err == nil {
			err = s.notifier.SendEnrollmentEmail(user.Name, user.Email, course.Title)
		}
		if err != nil {
			entry.Errorf("sending enrollment email: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, model.EnrollResponse{
		Success: true,
		Message: "Enrolled successfully",
		Course:  &model.EnrolledCourse{ID: course.ID, Title: course.Title},
	})
}

func (s *Server) listEnrolledCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.GetEnrolledCourses(userIDFrom(r.Context()))
	if err != nil {
		logger(r).Errorf("listing enrolled courses: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.CourseListResponse{Message: "Could not load courses", Data: []model.Course{}})
		return
	}

	writeJSON(w, r, http.StatusOK, model.CourseListResponse{Success: true, Data: courses})
}

// listSections returns the course content. Users who are not enrolled only
// see the free preview sections.
func (s *Server) listSections(w http.ResponseWriter, r *http.Request) {
	courseID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if _, err := s.db.GetCourseByID(courseID); err != nil {
		s.courseLookupFailed(w, r, err)
		return
	}

	enrolled, err := s.db.IsEnrolled(userIDFrom(r.Context()), courseID)
	if err != nil {
		logger(r).Errorf("checking enrollment: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.MessageResponse{Message: "Could not load sections"})
		return
	}

	sections, err := s.db.GetSections(courseID)
	if err != nil {
		logger(r).Errorf("listing sections: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.MessageResponse{Message: "Could not load sections"})
		return
	}

	if !enrolled {
		preview := []model.Section{}
		for _, section := range sections {
			if section.IsFree {
				preview = append(preview, section)
			}
		}
		sections = preview
	}

	writeJSON(w, r, http.StatusOK, model.SectionListResponse{Success: true, Enrolled: enrolled, Data: sections})
}

func (s *Server) courseLookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrNotFound) {
		writeJSON(w, r, http.StatusNotFound, model.MessageResponse{Message: "Course not found"})
		return
	}
	logger(r).Errorf("looking up course: %v", err)
	writeJSON(w, r, http.StatusInternalServerError, model.MessageResponse{Message: "Could not load course"})
}
