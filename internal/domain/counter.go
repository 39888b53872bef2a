// Package domain contains the core data model for the ranking engine:
// repository variants with their rating formulas, the user aggregate,
// and the raw counter scalar they are built from.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNumericConversion is returned when a raw counter cannot be coerced
// to a number at the point a rating, serialization or display needs it.
var ErrNumericConversion = errors.New("counter is not numeric")

// Counter wraps a raw repository counter exactly as a platform API
// delivered it. Construction never validates; coercion happens lazily
// so a malformed value only fails when it is actually used.
//
// The zero value is the absent counter, which coerces to 0 and
// serializes as JSON null.
type Counter struct {
	raw     string
	present bool
}

// CounterOf builds a counter from a numeric value.
func CounterOf(v float64) Counter {
	return Counter{raw: strconv.FormatFloat(v, 'f', -1, 64), present: true}
}

// CounterString builds a counter from a raw string value. The empty
// string coerces to 0 but is echoed back verbatim by Value.
func CounterString(s string) Counter {
	return Counter{raw: s, present: true}
}

// Present reports whether the counter carries any value at all.
func (c Counter) Present() bool {
	return c.present
}

// Float coerces the counter to a number. Absent and empty values are 0;
// anything unparsable fails with ErrNumericConversion.
func (c Counter) Float() (float64, error) {
	if !c.present || c.raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(c.raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", c.raw, ErrNumericConversion)
	}
	return v, nil
}

// Value returns the counter for structured output, echoing the raw
// input: nil when absent, a JSON number when numeric, the original
// string otherwise.
func (c Counter) Value() any {
	if !c.present {
		return nil
	}
	if c.raw == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(c.raw, 64); err == nil {
		return json.Number(c.raw)
	}
	return c.raw
}
