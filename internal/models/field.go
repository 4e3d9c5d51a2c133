package models

import (
	"encoding/json"
)

// FieldState records how an extracted text field was obtained
type FieldState int

const (
	// FieldAbsent means the element was not on the page
	FieldAbsent FieldState = iota
	// FieldPresent means the element was found; its text may still be empty
	FieldPresent
	// FieldFailed means reading the element raised an error
	FieldFailed
)

func (s FieldState) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Text is a best-effort extracted value. Absent and Failed both encode as JSON null.
type Text struct {
	Value string
	State FieldState
	Err   error
}

// Found builds a present value
func Found(v string) Text {
	return Text{Value: v, State: FieldPresent}
}

// Missing builds an absent value
func Missing() Text {
	return Text{State: FieldAbsent}
}

// Failed builds a value whose extraction raised err
func Failed(err error) Text {
	return Text{State: FieldFailed, Err: err}
}

// Ok reports whether the value was read from the page
func (t Text) Ok() bool {
	return t.State == FieldPresent
}

// Or returns the value when present, otherwise def
func (t Text) Or(def string) string {
	if t.Ok() {
		return t.Value
	}
	return def
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Ok() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Missing()
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Found(v)
	return nil
}
