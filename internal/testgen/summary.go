package testgen

import (
	"fmt"

	"github.com/abhisek/fhirtestgen/internal/llm"
)

// Tally counts cases per category and per subtype.
func Tally(cases []TestCase) (TestCaseTypeBreakdown, SubtypeBreakdown) {
	var types TestCaseTypeBreakdown
	var subs SubtypeBreakdown
	for _, tc := range cases {
		switch tc.Type {
		case TypeFunctional:
			types.Functional++
		case TypeRegression:
			types.Regression++
		case TypeEdge:
			types.Edge++
		}
		switch tc.Subtype {
		case SubtypePositive:
			subs.Positive++
		case SubtypeNegative:
			subs.Negative++
		}
	}
	return types, subs
}

// CheckSummary cross-checks the statistical summary against the test cases
// it describes. Both breakdowns must sum to the number of test cases and
// agree with a recount; each attribute may appear at most once in
// AttributeTestCaseDetails. Returns nil when the summary is consistent.
func (r *Response) CheckSummary() []llm.FieldError {
	var errs []llm.FieldError
	total := len(r.TestCases)
	types, subs := Tally(r.TestCases)

	const typePath = "/StatisticalSummary/TestCaseTypeBreakdown"
	got := r.Summary.TestCaseTypeBreakdown
	if got.Total() != total {
		errs = append(errs, sumError(typePath, got.Total(), total))
	} else {
		errs = appendMismatch(errs, typePath+"/Functional", got.Functional, types.Functional)
		errs = appendMismatch(errs, typePath+"/Regression", got.Regression, types.Regression)
		errs = appendMismatch(errs, typePath+"/Edge", got.Edge, types.Edge)
	}

	const subPath = "/StatisticalSummary/SubtypeBreakdown"
	gotSubs := r.Summary.SubtypeBreakdown
	if gotSubs.Total() != total {
		errs = append(errs, sumError(subPath, gotSubs.Total(), total))
	} else {
		errs = appendMismatch(errs, subPath+"/POSITIVE", gotSubs.Positive, subs.Positive)
		errs = appendMismatch(errs, subPath+"/NEGATIVE", gotSubs.Negative, subs.Negative)
	}

	seen := make(map[string]bool, len(r.Summary.AttributeTestCaseDetails))
	for i, d := range r.Summary.AttributeTestCaseDetails {
		if seen[d.Attribute] {
			errs = append(errs, llm.FieldError{
				Field:  fmt.Sprintf("/StatisticalSummary/AttributeTestCaseDetails/%d/Attribute", i),
				Reason: fmt.Sprintf("attribute %q is listed more than once", d.Attribute),
			})
		}
		seen[d.Attribute] = true
	}

	return errs
}

func sumError(path string, sum, total int) llm.FieldError {
	return llm.FieldError{
		Field:  path,
		Reason: fmt.Sprintf("breakdown sums to %d but there are %d test cases", sum, total),
	}
}

func appendMismatch(errs []llm.FieldError, path string, got, want int) []llm.FieldError {
	if got == want {
		return errs
	}
	return append(errs, llm.FieldError{
		Field:  path,
		Reason: fmt.Sprintf("reported %d but counted %d", got, want),
	})
}
