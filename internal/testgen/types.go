package testgen

import (
	"encoding/json"
	"fmt"
)

// Subtype says whether a test case exercises the happy path or a failure.
type Subtype string

const (
	SubtypePositive Subtype = "POSITIVE"
	SubtypeNegative Subtype = "NEGATIVE"
)

// Subtypes lists every Subtype in declaration order.
var Subtypes = []Subtype{SubtypePositive, SubtypeNegative}

// Valid reports whether s is one of the declared subtypes.
func (s Subtype) Valid() bool {
	switch s {
	case SubtypePositive, SubtypeNegative:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the declared set.
func (s *Subtype) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !Subtype(v).Valid() {
		return fmt.Errorf("unknown subtype %q", v)
	}
	*s = Subtype(v)
	return nil
}

// TestCaseType is the test category.
type TestCaseType string

const (
	TypeFunctional TestCaseType = "FUNCTIONAL"
	TypeRegression TestCaseType = "REGRESSION"
	TypeEdge       TestCaseType = "EDGE"
)

// TestCaseTypes lists every TestCaseType in declaration order.
var TestCaseTypes = []TestCaseType{TypeFunctional, TypeRegression, TypeEdge}

// Valid reports whether t is one of the declared categories.
func (t TestCaseType) Valid() bool {
	switch t {
	case TypeFunctional, TypeRegression, TypeEdge:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the declared set.
func (t *TestCaseType) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !TestCaseType(v).Valid() {
		return fmt.Errorf("unknown test case type %q", v)
	}
	*t = TestCaseType(v)
	return nil
}

// TestCase is one generated test case.
type TestCase struct {
	// ID combines type, subtype and a sequence number,
	// e.g. "TC_001_Functional_Positive".
	ID string `json:"TestCaseID"`

	Subtype Subtype      `json:"Subtype"`
	Type    TestCaseType `json:"TestCaseType"`

	// Description states the objective of the test case.
	Description string `json:"TestCaseDescription"`

	// ExpectedOutput is the FHIR resource and system behavior expected
	// after the steps run.
	ExpectedOutput string `json:"ExpectedOutput"`

	// Steps are executed in order.
	Steps []string `json:"TestSteps"`

	Criteria PassFailCriterion `json:"PassFailCriteria"`
}

// PassFailCriterion defines when a test case passes or fails.
type PassFailCriterion struct {
	Pass string `json:"Pass"`
	Fail string `json:"Fail"`
}

// MissingTestCaseReason explains why no test case exists for an attribute.
type MissingTestCaseReason struct {
	Attribute string `json:"Attribute"`
	Reason    string `json:"Reason"`
}

// BreakingTestCaseReason explains why an existing test case breaks under
// the new mapping.
type BreakingTestCaseReason struct {
	OriginalTestCaseID string   `json:"OriginalTestCaseID"`
	Reasons            []string `json:"ReasonForBreakage"`
}

// TestCaseTypeBreakdown counts test cases per TestCaseType.
type TestCaseTypeBreakdown struct {
	Functional int `json:"Functional"`
	Regression int `json:"Regression"`
	Edge       int `json:"Edge"`
}

// Total returns the sum over all categories.
func (b TestCaseTypeBreakdown) Total() int {
	return b.Functional + b.Regression + b.Edge
}

// Count returns the number of test cases of category t.
func (b TestCaseTypeBreakdown) Count(t TestCaseType) int {
	switch t {
	case TypeFunctional:
		return b.Functional
	case TypeRegression:
		return b.Regression
	case TypeEdge:
		return b.Edge
	}
	return 0
}

// SubtypeBreakdown counts test cases per Subtype.
type SubtypeBreakdown struct {
	Positive int `json:"POSITIVE"`
	Negative int `json:"NEGATIVE"`
}

// Total returns the sum over all subtypes.
func (b SubtypeBreakdown) Total() int {
	return b.Positive + b.Negative
}

// Count returns the number of test cases of subtype s.
func (b SubtypeBreakdown) Count(s Subtype) int {
	switch s {
	case SubtypePositive:
		return b.Positive
	case SubtypeNegative:
		return b.Negative
	}
	return 0
}

// AttributeTestCaseDetail counts the test cases written for one attribute.
type AttributeTestCaseDetail struct {
	Attribute         string `json:"Attribute"`
	NumberOfTestCases int    `json:"NumberOfTestCases"`
}

// StatisticalSummary describes the generated test suite as a whole.
type StatisticalSummary struct {
	MappingRows               int                       `json:"MappingRows"`
	UniqueAttributes          int                       `json:"UniqueAttributes"`
	NumberOfTestCasesCreated  int                       `json:"NumberOfTestCasesCreated"`
	NumberOfTestCasesModified int                       `json:"NumberOfTestCasesModified"`
	TestCaseTypeBreakdown     TestCaseTypeBreakdown     `json:"TestCaseTypeBreakdown"`
	SubtypeBreakdown          SubtypeBreakdown          `json:"SubtypeBreakdown"`
	AttributeTestCaseDetails  []AttributeTestCaseDetail `json:"AttributeTestCaseDetails"`
}

// Response is the complete structured model output.
type Response struct {
	TestCases         []TestCase               `json:"TestCases"`
	MissingTestCases  []MissingTestCaseReason  `json:"MissingTestCases"`
	BreakingTestCases []BreakingTestCaseReason `json:"BreakingTestCases"`
	Summary           StatisticalSummary       `json:"StatisticalSummary"`
}
