package entities

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cast"
)

var jsonNull = []byte("null")

// LooseString accepts any JSON value and keeps its textual form. Objects and
// arrays are kept as compact JSON text; only null becomes the empty-string
// sentinel.
type LooseString string

// UnmarshalJSON implements json.Unmarshaler
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		*s = ""
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch tv := v.(type) {
	case map[string]interface{}, []interface{}:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*s = LooseString(buf.String())
	case float64:
		// keep integral values free of a trailing ".0" / exponent
		if num, err := json.Number(string(data)).Int64(); err == nil {
			*s = LooseString(cast.ToString(num))
		} else {
			*s = LooseString(string(data))
		}
	default:
		*s = LooseString(cast.ToString(tv))
	}
	return nil
}

// String returns the raw text
func (s LooseString) String() string {
	return string(s)
}

// IsPending reports whether the field still holds the empty-string sentinel
func (s LooseString) IsPending() bool {
	return s == ""
}

// ObjectsField holds the objects attribute as delivered: a list of labels,
// or text that may embed one.
type ObjectsField struct {
	Labels []string
	Text   string
	isList bool
}

// NewObjectsList builds an ObjectsField from an already-decoded label list
func NewObjectsList(labels ...string) ObjectsField {
	if labels == nil {
		labels = []string{}
	}
	return ObjectsField{Labels: labels, isList: true}
}

// NewObjectsText builds an ObjectsField from text
func NewObjectsText(text string) ObjectsField {
	return ObjectsField{Text: text}
}

// IsList reports whether the backend delivered a native array
func (f ObjectsField) IsList() bool {
	return f.isList
}

// IsAbsent reports whether neither a list nor any text was delivered
func (f ObjectsField) IsAbsent() bool {
	return !f.isList && f.Text == ""
}

// UnmarshalJSON implements json.Unmarshaler
func (f *ObjectsField) UnmarshalJSON(data []byte) error {
	*f = ObjectsField{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch tv := v.(type) {
	case []interface{}:
		labels, err := cast.ToStringSliceE(tv)
		if err != nil {
			// keep the array as text so the decoder reports it
			var buf bytes.Buffer
			if cerr := json.Compact(&buf, data); cerr != nil {
				return cerr
			}
			f.Text = buf.String()
			return nil
		}
		*f = NewObjectsList(labels...)
	case string:
		f.Text = tv
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f ObjectsField) MarshalJSON() ([]byte, error) {
	if f.isList {
		return json.Marshal(f.Labels)
	}
	if f.Text == "" {
		return jsonNull, nil
	}
	return json.Marshal(f.Text)
}
