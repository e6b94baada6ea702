package testgen

import "github.com/abhisek/fhirtestgen/internal/llm"

// ResponseSchema defines the JSON schema for test-case generation responses.
var ResponseSchema = &llm.Schema{
	Name:        "fhir-test-cases",
	Description: "FHIR mapping test cases with coverage gaps, breakages and a statistical summary",
	Definition: object(
		field{"TestCases", array(testCaseSchema,
			"An exhaustive list of test cases, each test case is defined by a TestCase object")},
		field{"MissingTestCases", array(missingTestCaseSchema,
			"A list of missing test cases and the reasons for missing")},
		field{"BreakingTestCases", array(breakingTestCaseSchema,
			"A list of breaking test cases")},
		field{"StatisticalSummary", describe(statisticalSummarySchema,
			"Statistical summary of the whole set of test cases")},
	),
}

var testCaseSchema = object(
	field{"TestCaseID", str("A unique identifier for the test case, combining type, subtype, and a sequential number (e.g., TC_001_Functional_Positive).")},
	field{"Subtype", enum("Specifies whether the test case is Positive or Negative.", SubtypePositive, SubtypeNegative)},
	field{"TestCaseType", enum("Specifies the type of test case (e.g., Functional, Regression, Edge).", TypeFunctional, TypeRegression, TypeEdge)},
	field{"TestCaseDescription", str("A concise description of the objective or purpose of the test case.")},
	field{"ExpectedOutput", str("The expected FHIR resource and system behavior after executing the test case.")},
	field{"TestSteps", map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"minItems":    1,
		"description": "A list of detailed steps to execute the test case in sequence. Each step describes an action or input required for the test.",
	}},
	field{"PassFailCriteria", describe(object(
		field{"Pass", str("Clear criteria that define what constitutes a successful test case execution.")},
		field{"Fail", str("Clear criteria that define what constitutes a failed test case execution.")},
	), "An object that defines the criteria used to determine whether a test case passes or fails.")},
)

var missingTestCaseSchema = object(
	field{"Attribute", str("The name of the attribute or element for which a test case is missing.")},
	field{"Reason", str("A detailed explanation of why the test case is missing or could not be created.")},
)

var breakingTestCaseSchema = object(
	field{"OriginalTestCaseID", str("The unique identifier of the original test case that is breaking.")},
	field{"ReasonForBreakage", map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "A list of reasons explaining why the test case is breaking, including mapping or attribute-level issues. Each reason provides specific details about the breakage.",
	}},
)

var statisticalSummarySchema = object(
	field{"MappingRows", count("The total number of rows in the mapping CSV file")},
	field{"UniqueAttributes", count("The number of unique attributes listed in the layout attribute column.")},
	field{"NumberOfTestCasesCreated", count("The total number of test cases created based on the mapping.")},
	field{"NumberOfTestCasesModified", count("The total number of test cases that were updated or modified.")},
	field{"TestCaseTypeBreakdown", describe(object(
		field{"Functional", count("The number of functional test cases created.")},
		field{"Regression", count("The number of regression test cases created.")},
		field{"Edge", count("The number of edge test cases created.")},
	), "The total number of test cases per each category divided based on TestCaseType")},
	field{"SubtypeBreakdown", describe(object(
		field{"POSITIVE", count("The number of positive test cases created.")},
		field{"NEGATIVE", count("The number of negative test cases created.")},
	), "The total number of test cases per each category divided based on Subtype")},
	field{"AttributeTestCaseDetails", array(object(
		field{"Attribute", str("Name of the attribute")},
		field{"NumberOfTestCases", count("The number of test cases created for this specific attribute.")},
	), "The total number of test cases per each attribute")},
)

type field struct {
	name string
	def  map[string]any
}

// object builds a closed object schema. Every field is required, in the
// order given.
func object(fields ...field) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]any, len(fields))
	for i, f := range fields {
		props[f.name] = f.def
		required[i] = f.name
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func array(items map[string]any, desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       items,
		"description": desc,
	}
}

func describe(def map[string]any, desc string) map[string]any {
	out := make(map[string]any, len(def)+1)
	for k, v := range def {
		out[k] = v
	}
	out["description"] = desc
	return out
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func count(desc string) map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "description": desc}
}

func enum[T ~string](desc string, values ...T) map[string]any {
	e := make([]any, len(values))
	for i, v := range values {
		e[i] = string(v)
	}
	return map[string]any{"type": "string", "enum": e, "description": desc}
}
