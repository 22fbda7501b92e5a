package payments

import (
	"context"
	"testing"

	"learnhub/internal/model"
	"learnhub/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCharge(t *testing.T) {
	r := NewRecorder()

	payment, err := r.Charge(context.Background(), ChargeRequest{
		Price: pricing.Parse("$19.99"),
		Card:  model.CardDetails{Number: "4111111111111111"},
	})
	require.NoError(t, err)
	assert.Equal(t, "recorded_1", payment.ProviderID)
	assert.Equal(t, int64(1999), payment.Amount)
	assert.Equal(t, "USD", payment.Currency)
	assert.Equal(t, "1111", payment.LastFour)

	_, err = r.Charge(context.Background(), ChargeRequest{Price: pricing.Parse("call us")})
	assert.ErrorIs(t, err, ErrUnpriced)
}

func TestParseExpiry(t *testing.T) {
	m, y, err := ParseExpiry("04/27")
	require.NoError(t, err)
	assert.Equal(t, int64(4), m)
	assert.Equal(t, int64(2027), y)

	m, y, err = ParseExpiry(" 12 / 2031 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), m)
	assert.Equal(t, int64(2031), y)

	for _, bad := range []string{"", "1227", "13/27", "00/27", "ab/cd", "01/123"} {
		_, _, err := ParseExpiry(bad)
		assert.ErrorIs(t, err, ErrInvalidExpiry, bad)
	}
}
