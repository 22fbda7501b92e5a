package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultCurrency is assumed when a numeric price carries no currency marker.
const DefaultCurrency = "USD"

type Kind int

const (
	Unpriced Kind = iota
	Free
	Paid
)

func (k Kind) String() string {
	switch k {
	case Free:
		return "free"
	case Paid:
		return "paid"
	default:
		return "unpriced"
	}
}

// Price is the classified form of a course's price string.
// Amount is in minor units and only meaningful when HasAmount is set.
type Price struct {
	Kind      Kind
	Amount    int64
	Currency  string
	HasAmount bool
	Raw       string
}

var symbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"₹": "INR",
}

// IsFree reports whether a raw price string means no payment is required:
// it contains "free" in any case, or is exactly "0" once trimmed.
func IsFree(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return false
	}
	return strings.Contains(s, "free") || s == "0"
}

// Parse classifies a raw price string.
func Parse(raw string) Price {
	p := Price{Raw: raw}
	switch {
	case IsFree(raw):
		p.Kind = Free
		return p
	case strings.TrimSpace(raw) == "":
		return p
	}

	p.Kind = Paid
	amount, currency, err := parseAmount(raw)
	if err == nil {
		p.Amount = amount
		p.Currency = currency
		p.HasAmount = true
	}
	return p
}

// NewAmount builds a paid price from minor units.
func NewAmount(amount int64, currency string) Price {
	p := Price{Kind: Paid, Amount: amount, Currency: strings.ToUpper(currency), HasAmount: true}
	p.Raw = p.String()
	return p
}

func (p Price) IsFree() bool {
	return p.Kind == Free
}

func (p Price) String() string {
	if p.Raw != "" {
		return p.Raw
	}
	switch p.Kind {
	case Free:
		return "Free"
	case Paid:
		if !p.HasAmount {
			return ""
		}
		return fmt.Sprintf("%s %d.%02d", p.Currency, p.Amount/100, p.Amount%100)
	default:
		return ""
	}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a string, a number or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding price: %w", err)
		}
		*p = Parse(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding price: %w", err)
	}

	// A numeric zero is an absent price, like null, not the string "0".
	if f, err := n.Float64(); err == nil && f == 0 {
		*p = Price{}
		return nil
	}
	*p = Parse(numberString(n))
	return nil
}

// numberString renders a JSON number the way a JavaScript toString would,
// so 25 and 25.0 both become "25".
func numberString(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

func parseAmount(raw string) (int64, string, error) {
	s := strings.TrimSpace(raw)
	currency := DefaultCurrency

	for sym, code := range symbols {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimSpace(strings.TrimPrefix(s, sym))
			currency = code
			break
		}
	}

	if fields := strings.Fields(s); len(fields) == 2 {
		switch {
		case isCurrencyCode(fields[0]):
			currency, s = strings.ToUpper(fields[0]), fields[1]
		case isCurrencyCode(fields[1]):
			currency, s = strings.ToUpper(fields[1]), fields[0]
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 {
		return 0, "", fmt.Errorf("invalid amount %q", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 || units > (math.MaxInt64-99)/100 {
		return 0, "", fmt.Errorf("invalid amount %q", raw)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid amount %q", raw)
	}

	return units*100 + cents, currency, nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
