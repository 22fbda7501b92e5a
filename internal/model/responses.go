package model

// Wire shapes shared by the API server and its clients. Every response
// carries a success flag and, on failure, a human readable message.

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CourseListResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []Course `json:"data"`
}

type CourseResponse struct {
	Success bool   `json:"success"`
	Data    Course `json:"data"`
}

type SectionListResponse struct {
	Success  bool      `json:"success"`
	Enrolled bool      `json:"enrolled"`
	Data     []Section `json:"data"`
}

// EnrolledCourse identifies the course an enrollment landed on. The title
// key is capitalised on the wire.
type EnrolledCourse struct {
	ID    int    `json:"id"`
	Title string `json:"Title"`
}

type EnrollResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Course  *EnrolledCourse `json:"course,omitempty"`
}

type SignInResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}
