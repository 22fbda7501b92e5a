package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"learnhub/internal/database"
	"learnhub/internal/model"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var request CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, r, http.StatusBadRequest, model.MessageResponse{Message: "Invalid request body"})
		return
	}

	if err := s.validate.Struct(request); err != nil {
		writeJSON(w, r, http.StatusBadRequest, model.MessageResponse{Message: err.Error()})
		return
	}

	user, err := s.db.CreateUser(request.Name, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			writeJSON(w, r, http.StatusConflict, model.MessageResponse{Message: "Email already registered"})
			return
		}
		logger(r).Errorf("creating user: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.MessageResponse{Message: "Could not create user"})
		return
	}

	if s.notifier != nil {
		if err := s.notifier.SendRegistrationEmail(user.Name, user.Email); err != nil {
			logger(r).Errorf("sending registration email: %v", err)
		}
	}

	writeJSON(w, r, http.StatusCreated, CreateUserResponse{ID: strconv.Itoa(user.ID)})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var request SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, r, http.StatusBadRequest, model.SignInResponse{Message: "Invalid request body"})
		return
	}

	if err := s.validate.Struct(request); err != nil {
		writeJSON(w, r, http.StatusBadRequest, model.SignInResponse{Message: err.Error()})
		return
	}

	user, err := s.db.CheckPassword(request.Email, request.Password)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSON(w, r, http.StatusUnauthorized, model.SignInResponse{Message: "Invalid email or password"})
			return
		}
		logger(r).Errorf("checking password: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.SignInResponse{Message: "Could not sign in"})
		return
	}

	token, err := s.issueToken(user.ID, user.Email)
	if err != nil {
		logger(r).Errorf("issuing token: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.SignInResponse{Message: "Could not sign in"})
		return
	}

	writeJSON(w, r, http.StatusOK, model.SignInResponse{Success: true, Token: token, User: &user})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.GetUsers()
	if err != nil {
		logger(r).Errorf("listing users: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, model.MessageResponse{Message: err.Error()})
		return
	}

	writeJSON(w, r, http.StatusOK, users)
}
