// Package normalize turns raw query results into fully populated records.
//
// Every query has a small schema struct built from the lenient field types
// in this file. Their JSON decoding never fails: a missing or mistyped
// number becomes 0, a missing or mistyped list becomes empty, and malformed
// list elements are skipped. That funnels "field missing" and "field has the
// wrong type" through the same default as a failed query, without aborting
// the rest of the record.
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"nathanbeddoewebdev/donorlens/internal/source"
)

// Number is a float64 that decodes from JSON numbers or numeric strings.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number(parseNumber(b))
	return nil
}

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }

// Count is a non-negative integer that decodes like Number and truncates.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	v := parseNumber(b)
	if v < 0 || v > math.MaxInt32 {
		v = 0
	}
	*c = Count(int(v))
	return nil
}

// Int returns the value as int.
func (c Count) Int() int { return int(c) }

// Text is a string that also accepts numbers and booleans.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		*t = ""
		return nil
	}
	if b[0] == '{' || b[0] == '[' {
		*t = ""
		return nil
	}
	*t = Text(string(b))
	return nil
}

// String returns the text.
func (t Text) String() string { return string(t) }

// List is a slice that decodes element by element, skipping elements that
// fail to decode. A non-array value decodes to an empty list.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = List[T]{}
		return nil
	}
	out := make(List[T], 0, len(raw))
	for _, elem := range raw {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

func parseNumber(b []byte) float64 {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	var v float64
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		v = f
	} else if err := json.Unmarshal(b, &v); err != nil {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// decode fills dst from a successful result. It reports false when the
// query failed or the payload is not a JSON object, in which case the
// caller applies its documented default.
func decode(res source.Result, dst any) bool {
	if !res.OK() {
		return false
	}
	payload := bytes.TrimSpace(res.Payload)
	if len(payload) == 0 || payload[0] != '{' {
		return false
	}
	return json.Unmarshal(payload, dst) == nil
}

// hasArray reports whether the payload of res has key holding a JSON array.
func hasArray(res source.Result, key string) bool {
	if !res.OK() {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(res.Payload, &fields); err != nil {
		return false
	}
	raw := bytes.TrimSpace(fields[key])
	return len(raw) > 0 && raw[0] == '['
}

func floats(ns List[Number]) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.Float()
	}
	return out
}

func ints(cs List[Count]) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.Int()
	}
	return out
}

func texts(ts List[Text]) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		if s := t.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// axisLabels keeps every label in place. Blank labels are named after
// their 1-based position so grid values stay aligned with their column.
func axisLabels(ts List[Text], prefix string) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
		if out[i] == "" {
			out[i] = prefix + " " + strconv.Itoa(i+1)
		}
	}
	return out
}
