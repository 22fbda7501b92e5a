package model

// CardDetails is the payment form payload. It is only held for the duration of a request.
type CardDetails struct {
	HolderName string `json:"cardholdername" validate:"required"`
	Number     string `json:"cardnumber" validate:"required,max=16"`
	Expiry     string `json:"expmonthyear" validate:"required"`
	CVV        string `json:"cvvcode" validate:"required,max=3"`
}

// LastFour returns the trailing four digits of the card number, or "" when shorter.
func (c CardDetails) LastFour() string {
	if len(c.Number) < 4 {
		return ""
	}
	return c.Number[len(c.Number)-4:]
}
