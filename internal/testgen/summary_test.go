package testgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fhirtestgen/internal/llm"
)

func cases() []TestCase {
	return []TestCase{
		{ID: "TC_001", Subtype: SubtypePositive, Type: TypeFunctional},
		{ID: "TC_002", Subtype: SubtypeNegative, Type: TypeFunctional},
		{ID: "TC_003", Subtype: SubtypeNegative, Type: TypeEdge},
	}
}

func TestTally(t *testing.T) {
	types, subs := Tally(cases())
	assert.Equal(t, TestCaseTypeBreakdown{Functional: 2, Edge: 1}, types)
	assert.Equal(t, SubtypeBreakdown{Positive: 1, Negative: 2}, subs)
	assert.Equal(t, 3, types.Total())
	assert.Equal(t, 3, subs.Total())
}

func TestCheckSummary_Consistent(t *testing.T) {
	resp := &Response{TestCases: cases()}
	resp.Summary.TestCaseTypeBreakdown, resp.Summary.SubtypeBreakdown = Tally(resp.TestCases)
	resp.Summary.AttributeTestCaseDetails = []AttributeTestCaseDetail{
		{Attribute: "Patient.name", NumberOfTestCases: 2},
		{Attribute: "Patient.gender", NumberOfTestCases: 1},
	}
	assert.Empty(t, resp.CheckSummary())
}

func TestCheckSummary_ParsedMinimal(t *testing.T) {
	resp, err := Parse([]byte(minimalResponse))
	require.NoError(t, err)
	assert.Empty(t, resp.CheckSummary())
}

func TestCheckSummary_Inconsistent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StatisticalSummary)
		want   []llm.FieldError
	}{
		{
			name:   "type sum",
			mutate: func(s *StatisticalSummary) { s.TestCaseTypeBreakdown.Regression = 4 },
			want: []llm.FieldError{{
				Field:  "/StatisticalSummary/TestCaseTypeBreakdown",
				Reason: "breakdown sums to 7 but there are 3 test cases",
			}},
		},
		{
			name: "subtype distribution",
			mutate: func(s *StatisticalSummary) {
				s.SubtypeBreakdown = SubtypeBreakdown{Positive: 2, Negative: 1}
			},
			want: []llm.FieldError{
				{Field: "/StatisticalSummary/SubtypeBreakdown/POSITIVE", Reason: "reported 2 but counted 1"},
				{Field: "/StatisticalSummary/SubtypeBreakdown/NEGATIVE", Reason: "reported 1 but counted 2"},
			},
		},
		{
			name: "duplicate attribute",
			mutate: func(s *StatisticalSummary) {
				s.AttributeTestCaseDetails = []AttributeTestCaseDetail{
					{Attribute: "Patient.name", NumberOfTestCases: 1},
					{Attribute: "Patient.name", NumberOfTestCases: 2},
				}
			},
			want: []llm.FieldError{{
				Field:  "/StatisticalSummary/AttributeTestCaseDetails/1/Attribute",
				Reason: `attribute "Patient.name" is listed more than once`,
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{TestCases: cases()}
			resp.Summary.TestCaseTypeBreakdown, resp.Summary.SubtypeBreakdown = Tally(resp.TestCases)
			tt.mutate(&resp.Summary)
			assert.Equal(t, tt.want, resp.CheckSummary())
		})
	}
}

func TestBreakdownCount(t *testing.T) {
	types := TestCaseTypeBreakdown{Functional: 3, Regression: 2, Edge: 1}
	subs := SubtypeBreakdown{Positive: 4, Negative: 2}

	sum := 0
	for _, tt := range TestCaseTypes {
		sum += types.Count(tt)
	}
	assert.Equal(t, types.Total(), sum)
	assert.Equal(t, 2, types.Count(TypeRegression))
	assert.Equal(t, 0, types.Count("UNKNOWN"))

	sum = 0
	for _, s := range Subtypes {
		sum += subs.Count(s)
	}
	assert.Equal(t, subs.Total(), sum)
	assert.Equal(t, 2, subs.Count(SubtypeNegative))
}
