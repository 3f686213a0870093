package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Check is the outcome of one pass/fail item. The zero value is Unassessed,
// which is neither a pass nor a failure.
type Check int8

const (
	Unassessed Check = iota
	Pass
	Fail
)

func (c Check) String() string {
	switch c {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return "unassessed"
	}
}

// Assessed reports whether the check has an outcome.
func (c Check) Assessed() bool {
	return c == Pass || c == Fail
}

// CheckOf converts a nullable boolean.
func CheckOf(b *bool) Check {
	switch {
	case b == nil:
		return Unassessed
	case *b:
		return Pass
	default:
		return Fail
	}
}

// Bool is the nullable boolean form used on the wire and in storage.
func (c Check) Bool() *bool {
	var b bool
	switch c {
	case Pass:
		b = true
	case Fail:
		b = false
	default:
		return nil
	}
	return &b
}

// MarshalJSON encodes a check as true, false or null.
func (c Check) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Bool())
}

// UnmarshalJSON accepts true, false or null.
func (c *Check) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Unassessed
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("check must be true, false or null: %w", err)
	}
	*c = CheckOf(&b)
	return nil
}
