package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// EncodeRecords serializes the table as a JSON array of row objects.
// Keys keep column order and use the ", " / ": " separators, so a row reads
// {"field": "Patient.name", "missing": null}. A nil table encodes as [].
//
// Missing-value markers that were not normalized are an error: the output
// never contains NaN or Infinity.
func (t *Table) EncodeRecords() (string, error) {
	var b bytes.Buffer
	if err := writeRecords(&b, t); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeInstances serializes the table as {"instances": [...records]}.
func (t *Table) EncodeInstances() (string, error) {
	var b bytes.Buffer
	b.WriteString(`{"instances": `)
	if err := writeRecords(&b, t); err != nil {
		return "", err
	}
	b.WriteByte('}')
	return b.String(), nil
}

// EncodeValue serializes a single value with the same conventions as
// EncodeRecords.
func EncodeValue(v any) (string, error) {
	var b bytes.Buffer
	if err := writeValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeRecords(b *bytes.Buffer, t *Table) error {
	b.WriteByte('[')
	for i, rec := range t.Records() {
		if len(rec.Values) != len(rec.Keys) {
			return fmt.Errorf("row %d has %d cells, table has %d columns", i, len(rec.Values), len(rec.Keys))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('{')
		for j, k := range rec.Keys {
			if j > 0 {
				b.WriteString(", ")
			}
			writeString(b, k)
			b.WriteString(": ")
			if err := writeValue(b, rec.Values[j]); err != nil {
				return fmt.Errorf("row %d, column %q: %w", i, k, err)
			}
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return nil
}

func writeValue(b *bytes.Buffer, v any) error {
	if IsMissing(v) {
		return fmt.Errorf("unnormalized missing value %v", v)
	}
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		writeString(b, x)
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int:
		b.WriteString(strconv.Itoa(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString(formatFloat(x))
	case json.Number:
		b.WriteString(x.String())
	case []any:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeValue(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeString(b, k)
			b.WriteString(": ")
			if err := writeValue(b, x[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return fmt.Errorf("encode %T: %w", v, err)
		}
		b.Write(raw)
	}
	return nil
}

// formatFloat keeps a trailing ".0" on integral floats so a float column
// stays visibly fractional, the way pandas exports it.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeString(b *bytes.Buffer, s string) {
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	// Encode appends a newline; strip it.
	_ = enc.Encode(s)
	b.Truncate(b.Len() - 1)
}
