package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"learnhub/internal/model"
	"learnhub/internal/pricing"
)

var (
	ErrUnpriced        = errors.New("course has no chargeable price")
	ErrInvalidExpiry   = errors.New("invalid card expiry")
	ErrPaymentDeclined = errors.New("payment declined")
)

type ChargeRequest struct {
	Price       pricing.Price
	Card        model.CardDetails
	Description string
}

// Gateway charges a card for a paid course and reports the resulting payment.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*model.Payment, error)
}

// Recorder accepts every charge without contacting a processor. It is used
// when no processor key is configured.
type Recorder struct {
	mu   sync.Mutex
	next int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Charge(_ context.Context, req ChargeRequest) (*model.Payment, error) {
	if !req.Price.HasAmount {
		return nil, ErrUnpriced
	}

	r.mu.Lock()
	r.next++
	id := r.next
	r.mu.Unlock()

	return &model.Payment{
		ProviderID: fmt.Sprintf("recorded_%d", id),
		Amount:     req.Price.Amount,
		Currency:   req.Price.Currency,
		Status:     "recorded",
		LastFour:   req.Card.LastFour(),
	}, nil
}

// ParseExpiry reads "MM/YY" or "MM/YYYY" into a month and a four digit year.
func ParseExpiry(expiry string) (int64, int64, error) {
	month, year, ok := strings.Cut(strings.TrimSpace(expiry), "/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, expiry)
	}

	m, err := strconv.ParseInt(strings.TrimSpace(month), 10, 64)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, expiry)
	}

	year = strings.TrimSpace(year)
	y, err := strconv.ParseInt(year, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, expiry)
	}
	switch len(year) {
	case 2:
		y += 2000
	case 4:
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, expiry)
	}

	return m, y, nil
}
