package booking

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a booking with a lenient age: web forms post it as a
// number, a numeric string or "". Anything that is not a positive whole
// number leaves Age nil instead of rejecting the booking.
func (r *Request) UnmarshalJSON(b []byte) error {
	type plain Request
	aux := struct {
		*plain
		Age json.RawMessage `json:"age"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.Age = parseAge(aux.Age)
	return nil
}

func parseAge(raw json.RawMessage) *int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
