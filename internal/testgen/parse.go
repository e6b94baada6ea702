package testgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/abhisek/fhirtestgen/internal/llm"
)

// Parse validates raw against ResponseSchema and decodes it.
// Returns *llm.ErrInvalidResponse naming each offending field on failure.
//
// JSON Schema treats 1.0 as an integer, so integral counts written in
// float or exponent form are accepted. Counts outside the int64 range are
// reported at their field.
func Parse(raw []byte) (*Response, error) {
	if err := llm.ValidateResponse(ResponseSchema, raw); err != nil {
		return nil, err
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(raw, err)
	}

	var fields []llm.FieldError
	doc = integralNumbers(doc, nil, &fields)
	if len(fields) > 0 {
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return nil, &llm.ErrInvalidResponse{
			Content: raw,
			Fields:  fields,
			Err:     errors.New("integer out of range"),
		}
	}

	canonical, err := json.Marshal(doc)
	if err != nil {
		return nil, decodeError(raw, err)
	}

	var resp Response
	dec = json.NewDecoder(bytes.NewReader(canonical))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&resp); err != nil {
		return nil, decodeError(raw, err)
	}
	return &resp, nil
}

// integralNumbers rewrites integral numbers such as 1.0 or 2e3 in plain
// integer form so they decode into int fields.
func integralNumbers(v any, path []string, errs *[]llm.FieldError) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = integralNumbers(e, append(path[:len(path):len(path)], k), errs)
		}
	case []any:
		for i, e := range x {
			x[i] = integralNumbers(e, append(path[:len(path):len(path)], strconv.Itoa(i)), errs)
		}
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return x
		}
		f, err := x.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return x
		}
		if f != math.Trunc(f) {
			return x
		}
		if f < math.MinInt64 || f >= math.MaxInt64 || math.IsInf(f, 0) {
			*errs = append(*errs, llm.FieldError{
				Field:  llm.JSONPointer(path),
				Reason: fmt.Sprintf("%s does not fit in a 64-bit integer", x),
			})
			return x
		}
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return v
}

// decodeError reports a typed-decode failure, pointing at the field when
// the decoder names one.
func decodeError(raw []byte, err error) error {
	fe := llm.FieldError{Reason: err.Error()}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		fe = llm.FieldError{
			Field:  llm.JSONPointer(strings.Split(te.Field, ".")),
			Reason: fmt.Sprintf("cannot decode %s into %s", te.Value, te.Type),
		}
	}
	return &llm.ErrInvalidResponse{
		Content: raw,
		Fields:  []llm.FieldError{fe},
		Err:     fmt.Errorf("decode response: %w", err),
	}
}

// ParseLenient repairs common syntax damage in model output (markdown
// fences, trailing commas, single quotes, truncation) before calling Parse.
// Repair is syntactic only: out-of-set enum values are still rejected.
func ParseLenient(raw []byte) (*Response, error) {
	if json.Valid(raw) {
		return Parse(raw)
	}
	repaired, err := jsonrepair.RepairJSON(string(raw))
	if err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: raw,
			Fields:  []llm.FieldError{{Reason: fmt.Sprintf("unrepairable JSON: %v", err)}},
			Err:     fmt.Errorf("repair response: %w", err),
		}
	}
	return Parse([]byte(repaired))
}
