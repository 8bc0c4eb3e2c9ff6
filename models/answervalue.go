package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerKind discriminates the representation held by an AnswerValue
type AnswerKind int

// The shapes a survey answer may take on the wire and in the store
const (
	AnswerString AnswerKind = iota
	AnswerNumber
	AnswerBool
	AnswerList
)

// AnswerValue is a tagged union over the answer shapes a survey response may
// carry: string, number, boolean or string array. Which shapes are acceptable
// is decided by the paired question's declared type, see ValidForType.
type AnswerValue struct {
	Kind AnswerKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// MarshalJSON writes the underlying value without a wrapper object
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerNumber:
		return json.Marshal(a.Num)
	case AnswerBool:
		return json.Marshal(a.Bool)
	case AnswerList:
		if a.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.List)
	default:
		return json.Marshal(a.Str)
	}
}

// UnmarshalJSON accepts a string, number, boolean or array of strings
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AnswerValue{Kind: AnswerString, Str: s}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = AnswerValue{Kind: AnswerBool, Bool: b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = AnswerValue{Kind: AnswerNumber, Num: n}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = AnswerValue{Kind: AnswerList, List: list}
		return nil
	}
	return fmt.Errorf("answer must be a string, number, boolean or array of strings")
}

// MarshalBSONValue stores the underlying value directly in the document
func (a AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch a.Kind {
	case AnswerNumber:
		return bson.MarshalValue(a.Num)
	case AnswerBool:
		return bson.MarshalValue(a.Bool)
	case AnswerList:
		if a.List == nil {
			return bson.MarshalValue([]string{})
		}
		return bson.MarshalValue(a.List)
	default:
		return bson.MarshalValue(a.Str)
	}
}

// UnmarshalBSONValue restores the tagged union from the stored value
func (a *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*a = AnswerValue{Kind: AnswerString, Str: s}
		return nil
	case bsontype.Boolean:
		var b bool
		if err := bson.UnmarshalValue(t, data, &b); err != nil {
			return err
		}
		*a = AnswerValue{Kind: AnswerBool, Bool: b}
		return nil
	case bsontype.Double, bsontype.Int32, bsontype.Int64:
		var n float64
		if err := bson.UnmarshalValue(t, data, &n); err != nil {
			return err
		}
		*a = AnswerValue{Kind: AnswerNumber, Num: n}
		return nil
	case bsontype.Array:
		var list []string
		if err := bson.UnmarshalValue(t, data, &list); err != nil {
			return err
		}
		*a = AnswerValue{Kind: AnswerList, List: list}
		return nil
	case bsontype.Null:
		*a = AnswerValue{Kind: AnswerString}
		return nil
	}
	return fmt.Errorf("unsupported stored answer type %v", t)
}

// ValidForType reports whether the answer shape agrees with the given question
// type. Free-text questions also accept numbers since forms frequently post
// numeric input unquoted.
func (a AnswerValue) ValidForType(questionType string) bool {
	switch questionType {
	case QuestionTypeText, QuestionTypeTextarea:
		return a.Kind == AnswerString || a.Kind == AnswerNumber
	case QuestionTypeSelect, QuestionTypeRadio:
		return a.Kind == AnswerString
	case QuestionTypeCheckbox:
		return a.Kind == AnswerList
	}
	return false
}
