package request

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Amount accepts both a JSON number and a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// left at zero so the amount check reports it
			*a = 0
			return nil
		}
		*a = Amount(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

type PaymentIntentRequest struct {
	Amount      Amount `json:"amount"`
	UserEmail   string `json:"userEmail" validate:"omitempty,email"`
	BookingID   string `json:"bookingId"`
	Description string `json:"description" validate:"omitempty,max=500"`
}
