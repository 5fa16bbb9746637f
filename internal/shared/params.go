package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidFlag = errors.New("flag must be one of 0, 1, true, false")

// NumericString keeps a numeric request field as text so it can be
// validated before conversion. It decodes from a JSON number or string.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumericString(num.String())
	return nil
}

func (n NumericString) String() string {
	return string(n)
}

func (n NumericString) IsEmpty() bool {
	return strings.TrimSpace(string(n)) == ""
}

// Int64 parses the value; empty yields 0
func (n NumericString) Int64() (int64, error) {
	if n.IsEmpty() {
		return 0, nil
	}
	return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
}

// Flag is a request boolean sent as 0/1, true/false or their string forms
type Flag struct {
	Set   bool
	Value bool
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Flag{}
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalidFlag
		}
	}

	return f.Parse(raw)
}

// Parse reads a query or form value; empty leaves the flag unset
func (f *Flag) Parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*f = Flag{}
		return nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return ErrInvalidFlag
	}

	*f = Flag{Set: true, Value: v}
	return nil
}
