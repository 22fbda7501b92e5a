package notifications

import (
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

const fromAddress = "no-reply@learnhub.dev"

type Sender struct {
	client *sendgrid.Client
}

func NewSender(client *sendgrid.Client) *Sender {
	return &Sender{
		client: client,
	}
}

func (s *Sender) SendRegistrationEmail(name, destinationEmail string) error {
	return s.send(registrationMessage(name, destinationEmail))
}

func (s *Sender) SendEnrollmentEmail(name, destinationEmail, courseTitle string) error {
	return s.send(enrollmentMessage(name, destinationEmail, courseTitle))
}

func (s *Sender) send(message *mail.SGMailV3) error {
	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	if response.StatusCode != 202 {
		log.Errorf("failure sending email with sendgrid: %v", response.Body)
	}

	return nil
}

func registrationMessage(name, destinationEmail string) *mail.SGMailV3 {
	from := mail.NewEmail("Learnhub", fromAddress)
	to := mail.NewEmail(name, destinationEmail)
	subject := "Welcome to Learnhub!"
	plainTextContent := "Welcome to Learnhub. Browse the catalog and enroll in your first course."
	htmlContent := "<strong>Welcome to Learnhub!</strong>"
	return mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
}

func enrollmentMessage(name, destinationEmail, courseTitle string) *mail.SGMailV3 {
	from := mail.NewEmail("Learnhub", fromAddress)
	to := mail.NewEmail(name, destinationEmail)
	subject := fmt.Sprintf("You are enrolled in %s", courseTitle)
	plainTextContent := fmt.Sprintf("You are now enrolled in %s. Happy learning!", courseTitle)
	htmlContent := fmt.Sprintf("You are now enrolled in <strong>%s</strong>. Happy learning!", html.EscapeString(courseTitle))
	return mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
}
