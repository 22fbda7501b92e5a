package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentMessage(t *testing.T) {
	msg := enrollmentMessage("Ada", "ada@example.com", "Go <Basics>")

	assert.Equal(t, "You are enrolled in Go <Basics>", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	require.Len(t, msg.Personalizations[0].To, 1)
	assert.Equal(t, "ada@example.com", msg.Personalizations[0].To[0].Address)

	require.Len(t, msg.Content, 2)
	assert.Contains(t, msg.Content[1].Value, "Go &lt;Basics&gt;")
}

func TestRegistrationMessage(t *testing.T) {
	msg := registrationMessage("Ada", "ada@example.com")

	assert.Equal(t, fromAddress, msg.From.Address)
	assert.Equal(t, "Welcome to Learnhub!", msg.Subject)
}
