package webscraper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxDepth is the deepest nesting of mappings and sequences accepted in
// extracted data. Deeper values are rejected with EINVALID.
const MaxDepth = 64

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a JSON-like value extracted from a page: a string, number,
// boolean, null, an ordered mapping of string keys, or a sequence.
// The zero Value is null.
type Value struct {
	kind   Kind
	str    string // string contents or number literal
	b      bool
	fields []Field
	items  []Value
}

// Field is one key/value entry of a mapping.
type Field struct {
	Key   string
	Value Value
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number value holding the given JSON literal.
func NumberValue(n json.Number) Value { return Value{kind: KindNumber, str: string(n)} }

// IntValue returns a number value for n.
func IntValue(n int64) Value { return Value{kind: KindNumber, str: strconv.FormatInt(n, 10)} }

// FloatValue returns a number value for f.
func FloatValue(f float64) Value {
	return Value{kind: KindNumber, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// MapValue returns a mapping holding fields in the given order.
// A repeated key replaces the earlier entry in place.
func MapValue(fields ...Field) Value {
	var set fieldSet
	for _, f := range fields {
		set.put(f.Key, f.Value)
	}
	return Value{kind: KindMap, fields: set.fields}
}

// ListValue returns a sequence of items.
func ListValue(items ...Value) Value { return Value{kind: KindList, items: items} }

// F is shorthand for building a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// fieldSet collects fields in first-seen key order. A repeated key
// replaces the earlier value in place.
type fieldSet struct {
	fields []Field
	index  map[string]int
}

func (s *fieldSet) put(key string, v Value) {
	if i, ok := s.index[key]; ok {
		s.fields[i].Value = v
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, Field{Key: key, Value: v})
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsMap reports whether v is a mapping.
func (v Value) IsMap() bool { return v.kind == KindMap }

// IsList reports whether v is a sequence.
func (v Value) IsList() bool { return v.kind == KindList }

// IsContainer reports whether v is a mapping or a sequence.
func (v Value) IsContainer() bool { return v.kind == KindMap || v.kind == KindList }

// Fields returns the entries of a mapping in order, or nil for other kinds.
func (v Value) Fields() []Field { return v.fields }

// Items returns the elements of a sequence, or nil for other kinds.
func (v Value) Items() []Value { return v.items }

// Len returns the number of entries of a mapping or elements of a sequence.
func (v Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.fields)
	case KindList:
		return len(v.items)
	}
	return 0
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the keys of a mapping in order.
func (v Value) Keys() []string {
	if len(v.fields) == 0 {
		return nil
	}
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// Depth returns the nesting depth of v. Scalars have depth 0.
func (v Value) Depth() int {
	max := 0
	switch v.kind {
	case KindMap:
		for _, f := range v.fields {
			if d := f.Value.Depth(); d > max {
				max = d
			}
		}
	case KindList:
		for _, item := range v.items {
			if d := item.Depth(); d > max {
				max = d
			}
		}
	default:
		return 0
	}
	return max + 1
}

// String returns the textual form used when a value is written into a
// document: strings verbatim, numbers as their literal, booleans as
// true/false, null as "null" and containers as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	}
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.String()
}

// MarshalJSON encodes v preserving mapping order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		writeJSONString(buf, v.str)
	case KindNumber:
		buf.WriteString(v.str)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindMap:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, f.Key)
			buf.WriteByte(':')
			f.Value.writeJSON(buf)
		}
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeJSON(buf)
		}
		buf.WriteByte(']')
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	buf.Truncate(buf.Len() - 1)
}

// UnmarshalJSON decodes data into v preserving mapping order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseValue decodes a single JSON value from data.
func ParseValue(data []byte) (Value, error) {
	return DecodeValue(bytes.NewReader(data))
}

// DecodeValue decodes a single JSON value from r. Mapping order is kept,
// numbers keep their literal text and nesting beyond MaxDepth is rejected.
func DecodeValue(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, Errorf(EINVALID, "unexpected data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, invalidJSON(err)
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Delim:
		if depth >= MaxDepth {
			return Value{}, Errorf(EINVALID, "value nesting exceeds %d levels", MaxDepth)
		}
		switch t {
		case '{':
			return decodeMap(dec, depth+1)
		case '[':
			return decodeList(dec, depth+1)
		}
	}
	return Value{}, Errorf(EINVALID, "unexpected JSON token %v", tok)
}

func decodeMap(dec *json.Decoder, depth int) (Value, error) {
	var set fieldSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, invalidJSON(err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, Errorf(EINVALID, "object key must be a string, got %v", tok)
		}
		item, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		set.put(key, item)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return Value{}, invalidJSON(err)
	}
	return Value{kind: KindMap, fields: set.fields}, nil
}

func decodeList(dec *json.Decoder, depth int) (Value, error) {
	v := Value{kind: KindList}
	for dec.More() {
		item, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		v.items = append(v.items, item)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return Value{}, invalidJSON(err)
	}
	return v, nil
}

func invalidJSON(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return Errorf(EINVALID, "invalid JSON: %v", err)
}

// GoString makes test failures readable.
func (v Value) GoString() string {
	return fmt.Sprintf("webscraper.Value(%s %s)", v.kind, strings.TrimSpace(v.String()))
}
