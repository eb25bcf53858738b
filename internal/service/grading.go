package service

import (
	"encoding/json"
	"math"
	"strconv"

	"schoolhub_backend/internal/model"
)

// GradeResult is the outcome of auto-evaluating one submission.
// ObtainedMarks only covers objectively checkable question types;
// short/long/file answers count toward TotalMarks and wait for
// manual grading.
type GradeResult struct {
	TotalMarks    float64 `json:"totalMarks"`
	ObtainedMarks float64 `json:"obtainedMarks"`
}

// EvaluateSubmission grades a full answer set against the assignment
// questions. Every question is evaluated independently; a malformed
// answer or answer key yields zero credit for that question, never an
// error. Unanswered questions still contribute their marks to the
// total.
func EvaluateSubmission(questions []model.AssignmentQuestion, answers map[int]interface{}) GradeResult {
	var result GradeResult

	for _, q := range questions {
		marks := q.Marks
		if marks == 0 {
			marks = 1
		}
		result.TotalMarks += marks

		answer, ok := answers[q.QNo]
		if !ok {
			continue
		}

		correct := false
		switch q.Type {
		case model.QuestionMCQ:
			correct = len(q.Correct) > 0 && strictEqual(answer, q.Correct[0])
		case model.QuestionMSQ:
			correct = setEqual(answer, q.Correct)
		case model.QuestionTF:
			correct = len(q.Correct) > 0 && coercedEqual(answer, q.Correct[0])
		case model.QuestionNumeric:
			correct = numericMatch(answer, q.Correct, q.Tolerance)
		}

		if correct {
			result.ObtainedMarks += marks
		}
	}

	return result
}

// Percentage is the rounded score share. A zero total grades to 0
// rather than propagating a division by zero.
func Percentage(total, obtained float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(obtained / total * 100)
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// strictEqual mirrors strict equality on JSON values: numbers match
// numbers, strings match strings, nothing matches across types.
func strictEqual(a, b interface{}) bool {
	if an, ok := asNumber(a); ok {
		bn, ok := asNumber(b)
		return ok && an == bn
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	return false
}

// coercedEqual compares after string coercion, so true, "true" and
// a stored "true" literal all agree.
func coercedEqual(a, b interface{}) bool {
	return coerce(a) == coerce(b)
}

func coerce(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// setEqual requires the selected set to have exactly the same size
// and members as the answer key. Order never matters, subsets earn
// nothing.
func setEqual(answer interface{}, correct []interface{}) bool {
	selected, ok := answer.([]interface{})
	if !ok {
		return false
	}
	if len(selected) != len(correct) {
		return false
	}
	for _, sel := range selected {
		found := false
		for _, c := range correct {
			if strictEqual(sel, c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func numericMatch(answer interface{}, correct []interface{}, tolerance float64) bool {
	if len(correct) == 0 {
		return false
	}
	expected, ok := asFloat(correct[0])
	if !ok {
		return false
	}
	value, ok := asFloat(answer)
	if !ok {
		return false
	}
	return math.Abs(value-expected) <= tolerance
}

// asNumber accepts only values that are numbers on the wire.
func asNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asFloat additionally parses numeric strings, matching how numeric
// answers arrive from free-text inputs. Empty or non-numeric text
// never matches.
func asFloat(v interface{}) (float64, bool) {
	if f, ok := asNumber(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok && s != "" {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}
