package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Decimal is a fixed-point amount kept in its textual form, e.g. "5.50".
// It accepts both JSON strings and JSON numbers and always encodes as a string.
type Decimal string

var errInvalidDecimal = errors.New("invalid decimal")

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}

	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return errInvalidDecimal
	}
	*d = Decimal(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// String returns the textual amount.
func (d Decimal) String() string {
	return string(d)
}
