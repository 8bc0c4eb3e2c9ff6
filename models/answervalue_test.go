package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerValueUnmarshalJSON(t *testing.T) {
	var a AnswerValue

	assert.NoError(t, json.Unmarshal([]byte(`"150 lbs"`), &a))
	assert.Equal(t, AnswerString, a.Kind)
	assert.Equal(t, "150 lbs", a.Str)

	assert.NoError(t, json.Unmarshal([]byte(`42.5`), &a))
	assert.Equal(t, AnswerNumber, a.Kind)
	assert.Equal(t, 42.5, a.Num)

	assert.NoError(t, json.Unmarshal([]byte(`true`), &a))
	assert.Equal(t, AnswerBool, a.Kind)
	assert.True(t, a.Bool)

	assert.NoError(t, json.Unmarshal([]byte(`["fatigue","headache"]`), &a))
	assert.Equal(t, AnswerList, a.Kind)
	assert.Equal(t, []string{"fatigue", "headache"}, a.List)

	assert.Error(t, json.Unmarshal([]byte(`{"nested":"object"}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &a))
}

func TestAnswerValueMarshalJSON(t *testing.T) {
	b, err := json.Marshal(AnswerValue{Kind: AnswerString, Str: "150 lbs"})
	assert.NoError(t, err)
	assert.JSONEq(t, `"150 lbs"`, string(b))

	b, err = json.Marshal(AnswerValue{Kind: AnswerNumber, Num: 7})
	assert.NoError(t, err)
	assert.JSONEq(t, `7`, string(b))

	b, err = json.Marshal(AnswerValue{Kind: AnswerBool, Bool: false})
	assert.NoError(t, err)
	assert.JSONEq(t, `false`, string(b))

	// a nil list still serializes as a list
	b, err = json.Marshal(AnswerValue{Kind: AnswerList})
	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestAnswerValueJSONRoundTripInsideAnswer(t *testing.T) {
	var answer SurveyAnswer
	assert.NoError(t, json.Unmarshal([]byte(`{"questionText":"Symptoms?","answer":["fatigue"]}`), &answer))
	assert.Equal(t, AnswerList, answer.Answer.Kind)

	b, err := json.Marshal(answer)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"answer":["fatigue"]`)
}

func TestAnswerValueValidForType(t *testing.T) {
	str := AnswerValue{Kind: AnswerString, Str: "yes"}
	num := AnswerValue{Kind: AnswerNumber, Num: 3}
	boolean := AnswerValue{Kind: AnswerBool, Bool: true}
	list := AnswerValue{Kind: AnswerList, List: []string{"a"}}

	assert.True(t, str.ValidForType(QuestionTypeText))
	assert.True(t, num.ValidForType(QuestionTypeText))
	assert.True(t, str.ValidForType(QuestionTypeTextarea))
	assert.False(t, list.ValidForType(QuestionTypeText))

	assert.True(t, str.ValidForType(QuestionTypeSelect))
	assert.True(t, str.ValidForType(QuestionTypeRadio))
	assert.False(t, num.ValidForType(QuestionTypeSelect))
	assert.False(t, boolean.ValidForType(QuestionTypeRadio))

	assert.True(t, list.ValidForType(QuestionTypeCheckbox))
	assert.False(t, str.ValidForType(QuestionTypeCheckbox))

	assert.False(t, str.ValidForType("unknown"))
}
