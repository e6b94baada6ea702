package testgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fhirtestgen/internal/llm"
)

const minimalResponse = `{
  "TestCases": [
    {
      "TestCaseID": "TC_001_Functional_Positive",
      "Subtype": "POSITIVE",
      "TestCaseType": "FUNCTIONAL",
      "TestCaseDescription": "PID-5 maps to Patient.name",
      "ExpectedOutput": "Patient.name.family is SMITH",
      "TestSteps": ["Send ADT^A01 with PID-5 SMITH^JOHN"],
      "PassFailCriteria": {"Pass": "family name is SMITH", "Fail": "family name missing"}
    }
  ],
  "MissingTestCases": [],
  "BreakingTestCases": [],
  "StatisticalSummary": {
    "MappingRows": 1,
    "UniqueAttributes": 1,
    "NumberOfTestCasesCreated": 1,
    "NumberOfTestCasesModified": 0,
    "TestCaseTypeBreakdown": {"Functional": 1, "Regression": 0, "Edge": 0},
    "SubtypeBreakdown": {"POSITIVE": 1, "NEGATIVE": 0},
    "AttributeTestCaseDetails": [{"Attribute": "Patient.name", "NumberOfTestCases": 1}]
  }
}`

func invalidFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var invErr *llm.ErrInvalidResponse
	require.True(t, errors.As(err, &invErr), "expected ErrInvalidResponse, got %T: %v", err, err)
	fields := map[string]string{}
	for _, f := range invErr.Fields {
		fields[f.Field] = f.Reason
	}
	return fields
}

func TestParse_Minimal(t *testing.T) {
	resp, err := Parse([]byte(minimalResponse))
	require.NoError(t, err)

	want := TestCase{
		ID:             "TC_001_Functional_Positive",
		Subtype:        SubtypePositive,
		Type:           TypeFunctional,
		Description:    "PID-5 maps to Patient.name",
		ExpectedOutput: "Patient.name.family is SMITH",
		Steps:          []string{"Send ADT^A01 with PID-5 SMITH^JOHN"},
		Criteria:       PassFailCriterion{Pass: "family name is SMITH", Fail: "family name missing"},
	}
	require.Len(t, resp.TestCases, 1)
	if diff := cmp.Diff(want, resp.TestCases[0]); diff != "" {
		t.Errorf("test case mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, resp.Summary.SubtypeBreakdown.Positive)
	assert.Equal(t, "Patient.name", resp.Summary.AttributeTestCaseDetails[0].Attribute)
	assert.Empty(t, resp.MissingTestCases)
}

func TestParse_RejectsUnknownSubtype(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"Subtype": "POSITIVE"`, `"Subtype": "MAYBE"`, 1)

	_, err := Parse([]byte(raw))
	require.Error(t, err)

	fields := invalidFields(t, err)
	reason, ok := fields["/TestCases/0/Subtype"]
	require.True(t, ok, "expected a field error on the subtype, got %v", fields)
	assert.Contains(t, reason, "'POSITIVE'")
}

func TestParse_RejectsUnknownCategory(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"TestCaseType": "FUNCTIONAL"`, `"TestCaseType": "functional"`, 1)

	_, err := Parse([]byte(raw))
	fields := invalidFields(t, err)
	assert.Contains(t, fields, "/TestCases/0/TestCaseType")
}

func TestParse_RejectsMissingRequired(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"ExpectedOutput": "Patient.name.family is SMITH",`, "", 1)

	_, err := Parse([]byte(raw))
	fields := invalidFields(t, err)
	assert.Equal(t, "required field is missing", fields["/TestCases/0/ExpectedOutput"])
}

func TestParse_RejectsNegativeCount(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"MappingRows": 1`, `"MappingRows": -1`, 1)

	_, err := Parse([]byte(raw))
	fields := invalidFields(t, err)
	assert.Contains(t, fields, "/StatisticalSummary/MappingRows")
}

func TestParse_RejectsEmptySteps(t *testing.T) {
	raw := strings.Replace(minimalResponse, `["Send ADT^A01 with PID-5 SMITH^JOHN"]`, `[]`, 1)

	_, err := Parse([]byte(raw))
	fields := invalidFields(t, err)
	assert.Contains(t, fields, "/TestCases/0/TestSteps")
}

func TestParse_RejectsUnknownField(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"MissingTestCases": [],`, `"MissingTestCases": [], "Extra": 1,`, 1)

	_, err := Parse([]byte(raw))
	require.Error(t, err)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"TestCases": [`))
	fields := invalidFields(t, err)
	assert.Contains(t, fields, "")
}

func TestParseLenient_RepairsTrailingComma(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"NumberOfTestCases": 1}]`, `"NumberOfTestCases": 1},]`, 1)

	_, err := Parse([]byte(raw))
	require.Error(t, err)

	resp, err := ParseLenient([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, resp.TestCases, 1)
}

func TestParseLenient_StillRejectsUnknownSubtype(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"Subtype": "POSITIVE"`, `"Subtype": "MAYBE"`, 1)

	_, err := ParseLenient([]byte(raw))
	fields := invalidFields(t, err)
	assert.Contains(t, fields, "/TestCases/0/Subtype")
}

func TestEnumUnmarshal(t *testing.T) {
	var s Subtype
	require.NoError(t, json.Unmarshal([]byte(`"NEGATIVE"`), &s))
	assert.Equal(t, SubtypeNegative, s)
	assert.Error(t, json.Unmarshal([]byte(`"MAYBE"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`1`), &s))

	var tt TestCaseType
	require.NoError(t, json.Unmarshal([]byte(`"EDGE"`), &tt))
	assert.Equal(t, TypeEdge, tt)
	assert.Error(t, json.Unmarshal([]byte(`"Edge"`), &tt))
}

func TestWireNames(t *testing.T) {
	tc := TestCase{
		ID:       "TC_1",
		Subtype:  SubtypeNegative,
		Type:     TypeEdge,
		Steps:    []string{"a"},
		Criteria: PassFailCriterion{Pass: "p", Fail: "f"},
	}
	b, err := json.Marshal(tc)
	require.NoError(t, err)

	for _, name := range []string{`"TestCaseID"`, `"TestCaseType"`, `"TestCaseDescription"`, `"TestSteps"`, `"PassFailCriteria"`, `"Pass"`, `"Fail"`} {
		assert.Contains(t, string(b), name)
	}

	var back TestCase
	require.NoError(t, json.Unmarshal(b, &back))
	if diff := cmp.Diff(tc, back); diff != "" {
		t.Errorf("wire names are not bidirectional (-want +got):\n%s", diff)
	}
}

func TestParse_AcceptsIntegralFloatCounts(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"MappingRows": 1`, `"MappingRows": 1.0`, 1)
	raw = strings.Replace(raw, `"UniqueAttributes": 1`, `"UniqueAttributes": 1e0`, 1)

	resp, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.MappingRows)
	assert.Equal(t, 1, resp.Summary.UniqueAttributes)
}

func TestParse_CountOutOfRangeNamesField(t *testing.T) {
	for _, n := range []string{"100000000000000000000", "1e20"} {
		t.Run(n, func(t *testing.T) {
			raw := strings.Replace(minimalResponse, `"MappingRows": 1`, `"MappingRows": `+n, 1)

			_, err := Parse([]byte(raw))
			fields := invalidFields(t, err)
			require.Len(t, fields, 1)
			assert.Contains(t, fields["/StatisticalSummary/MappingRows"], "does not fit in a 64-bit integer")
		})
	}
}

func TestParse_OutOfRangeCountInArray(t *testing.T) {
	raw := strings.Replace(minimalResponse, `"NumberOfTestCases": 1`, `"NumberOfTestCases": 1e19`, 1)

	_, err := Parse([]byte(raw))
	fields := invalidFields(t, err)
	assert.Contains(t, fields, "/StatisticalSummary/AttributeTestCaseDetails/0/NumberOfTestCases")
}
