/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package refs provides the value family of names: references to plain
// values (strings, numbers, times, binary data, lists, maps, uuids), to
// session global variables and to values wrapped by the reference factory.
package refs

import (
	"encoding/base64"
	"time"

	"dirpx.dev/mrx/apis"
)

// Shape identifiers of the value family.
const (
	ShapeNull    = "value.null"
	ShapeString  = "value.string"
	ShapeBool    = "value.bool"
	ShapeInt     = "value.int"
	ShapeLong    = "value.long"
	ShapeFloat   = "value.float"
	ShapeDouble  = "value.double"
	ShapeUUID    = "value.uuid"
	ShapeTime    = "value.time"
	ShapeBytes   = "value.bytes"
	ShapeList    = "value.list"
	ShapeMap     = "value.map"
	ShapeGlobal  = "value.global"
	ShapeWrapped = "value.wrapped"
)

// NullValue references the absent value.
type NullValue struct {
	apis.NameMeta
}

// StringValue references a string.
type StringValue struct {
	apis.NameMeta
	Value string `json:"value"`
}

// BoolValue references a bool.
type BoolValue struct {
	apis.NameMeta
	Value bool `json:"value"`
}

// IntValue references an int.
type IntValue struct {
	apis.NameMeta
	Value int `json:"value"`
}

// LongValue references an int64. Other signed integer kinds are widened
// to it by the reference factory.
type LongValue struct {
	apis.NameMeta
	Value int64 `json:"value"`
}

// FloatValue references a float32.
type FloatValue struct {
	apis.NameMeta
	Value float32 `json:"value"`
}

// DoubleValue references a float64.
type DoubleValue struct {
	apis.NameMeta
	Value float64 `json:"value"`
}

// UUIDValue references a uuid.UUID in its canonical string form.
type UUIDValue struct {
	apis.NameMeta
	Value string `json:"value"`
}

// TimeValue references a time.Time in RFC 3339 form with nanoseconds.
type TimeValue struct {
	apis.NameMeta
	Value string `json:"value"`
}

// BytesValue references binary data in standard base64.
type BytesValue struct {
	apis.NameMeta
	Value string `json:"value"`
}

// ListValue references a list by the names of its elements.
type ListValue struct {
	apis.NameMeta
	Items []apis.Name `json:"items"`
}

// MapEntry is one entry of a MapValue.
type MapEntry struct {
	Key   string    `json:"key"`
	Value apis.Name `json:"value"`
}

// MapValue references a string keyed map by the names of its values.
// Entries are sorted by key.
type MapValue struct {
	apis.NameMeta
	Entries []MapEntry `json:"entries"`
}

// GlobalVariable references the value of a session global variable.
type GlobalVariable struct {
	apis.NameMeta
	Name string `json:"name"`
}

// WrappedValue holds the reference the factory found for a value no
// model scheme names directly.
type WrappedValue struct {
	apis.NameMeta
	Ref apis.Name `json:"ref"`
}

// NewNull returns a NullValue.
func NewNull() *NullValue {
	return &NullValue{NameMeta: apis.NewNameMeta(ShapeNull)}
}

// NewString returns a StringValue.
func NewString(v string) *StringValue {
	return &StringValue{NameMeta: apis.NewNameMeta(ShapeString), Value: v}
}

// NewTime returns a TimeValue. The location is reduced to its offset.
func NewTime(v time.Time) *TimeValue {
	return &TimeValue{NameMeta: apis.NewNameMeta(ShapeTime), Value: v.Format(time.RFC3339Nano)}
}

// NewBytes returns a BytesValue.
func NewBytes(v []byte) *BytesValue {
	return &BytesValue{NameMeta: apis.NewNameMeta(ShapeBytes), Value: base64.StdEncoding.EncodeToString(v)}
}

// NewGlobalVariable returns a GlobalVariable reference.
func NewGlobalVariable(name string) *GlobalVariable {
	return &GlobalVariable{NameMeta: apis.NewNameMeta(ShapeGlobal), Name: name}
}

// NewWrappedValue returns a WrappedValue holding ref.
func NewWrappedValue(ref apis.Name) *WrappedValue {
	return &WrappedValue{NameMeta: apis.NewNameMeta(ShapeWrapped), Ref: ref}
}
