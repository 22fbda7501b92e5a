// Package session holds the signed-in user's credentials and the small
// amount of client state that survives between runs.
package session

import "learnhub/internal/model"

// Session is passed explicitly to whatever needs to act on behalf of the user.
type Session struct {
	Token string
	User  *model.User
}

func (s Session) LoggedIn() bool {
	return s.Token != "" && s.User != nil
}
