package table

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultNAValues are the CSV cell texts read as missing values. The set
// mirrors the markers spreadsheet exports and dataframe tools emit.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Options controls how tabular files are read.
type Options struct {
	// NAValues lists the CSV cell texts treated as missing. Nil means
	// DefaultNAValues; an empty non-nil slice disables marker detection
	// except for empty cells.
	NAValues []string
}

// ParseError reports a malformed tabular source.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", loc, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads a table from path, choosing the format from its extension:
// .csv, .json, .yaml or .yml.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	var t *Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err = ReadCSV(f, opts)
	case ".json":
		t, err = ReadJSON(f)
	case ".yaml", ".yml":
		t, err = ReadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported table format %q", ext)
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return t, nil
}

// ReadCSV reads a header row followed by data rows. Cells matching an NA
// marker become NA; each column is then typed as int64, float64, bool or
// string, whichever fits every non-missing cell.
func ReadCSV(r io.Reader, opts Options) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, csvError(err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	na := opts.NAValues
	if na == nil {
		na = DefaultNAValues
	}
	isNA := make(map[string]bool, len(na)+1)
	isNA[""] = true
	for _, v := range na {
		isNA[v] = true
	}

	var raw [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		raw = append(raw, rec)
	}

	t := New(header...)
	t.Rows = make([][]any, len(raw))
	for i := range raw {
		t.Rows[i] = make([]any, len(header))
	}
	for col := range header {
		conv := inferColumn(raw, col, isNA)
		for i, rec := range raw {
			t.Rows[i][col] = conv(rec[col], isNA)
		}
	}
	return t, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

type cellConv func(s string, isNA map[string]bool) any

func inferColumn(rows [][]string, col int, isNA map[string]bool) cellConv {
	allInt, allFloat, allBool := true, true, true
	seen := false
	for _, rec := range rows {
		s := rec[col]
		if isNA[s] {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allFloat = false
		}
		if _, ok := parseBool(s); !ok {
			allBool = false
		}
	}

	switch {
	case !seen:
		return func(string, map[string]bool) any { return NA }
	case allInt:
		return func(s string, isNA map[string]bool) any {
			if isNA[s] {
				return NA
			}
			n, _ := strconv.ParseInt(s, 10, 64)
			return n
		}
	case allFloat:
		return func(s string, isNA map[string]bool) any {
			if isNA[s] {
				return NA
			}
			f, _ := strconv.ParseFloat(s, 64)
			return f
		}
	case allBool:
		return func(s string, isNA map[string]bool) any {
			if isNA[s] {
				return NA
			}
			b, _ := parseBool(s)
			return b
		}
	default:
		return func(s string, isNA map[string]bool) any {
			if isNA[s] {
				return NA
			}
			return s
		}
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// recordSet accumulates ordered records whose key sets may differ. Columns
// are the union of keys in first-seen order; absent keys become NA.
type recordSet struct {
	columns []string
	index   map[string]int
	rows    []map[string]any
}

func newRecordSet() *recordSet {
	return &recordSet{index: make(map[string]int)}
}

func (s *recordSet) add(keys []string, values []any) {
	row := make(map[string]any, len(keys))
	for i, k := range keys {
		if _, ok := s.index[k]; !ok {
			s.index[k] = len(s.columns)
			s.columns = append(s.columns, k)
		}
		row[k] = values[i]
	}
	s.rows = append(s.rows, row)
}

func (s *recordSet) table() *Table {
	t := New(s.columns...)
	t.Rows = make([][]any, len(s.rows))
	for i, row := range s.rows {
		cells := make([]any, len(s.columns))
		for j, c := range s.columns {
			v, ok := row[c]
			if !ok {
				v = NA
			}
			cells[j] = v
		}
		t.Rows[i] = cells
	}
	return t
}

// ReadJSON reads either a top-level array of objects or an object with an
// "instances" array, preserving each object's key order.
func ReadJSON(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read JSON: %w", err)}
	}
	switch tok {
	case json.Delim('['):
		return readJSONArray(dec)
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, &ParseError{Err: err}
			}
			if keyTok == "instances" {
				open, err := dec.Token()
				if err != nil {
					return nil, &ParseError{Err: err}
				}
				if open != json.Delim('[') {
					return nil, &ParseError{Err: errors.New(`"instances" must be an array`)}
				}
				return readJSONArray(dec)
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, &ParseError{Err: err}
			}
		}
		return nil, &ParseError{Err: errors.New(`object has no "instances" array`)}
	default:
		return nil, &ParseError{Err: fmt.Errorf("expected array of records, got %v", tok)}
	}
}

func readJSONArray(dec *json.Decoder) (*Table, error) {
	set := newRecordSet()
	for n := 0; dec.More(); n++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if tok != json.Delim('{') {
			return nil, &ParseError{Err: fmt.Errorf("record %d: expected object, got %v", n, tok)}
		}
		var keys []string
		var values []any
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, &ParseError{Err: err}
			}
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, &ParseError{Err: fmt.Errorf("record %d: %w", n, err)}
			}
			keys = append(keys, keyTok.(string))
			values = append(values, fromJSON(v))
		}
		if _, err := dec.Token(); err != nil {
			return nil, &ParseError{Err: err}
		}
		set.add(keys, values)
	}
	return set.table(), nil
}

// fromJSON converts json.Number values into int64 or float64.
func fromJSON(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i, e := range x {
			x[i] = fromJSON(e)
		}
		return x
	case map[string]any:
		for k, e := range x {
			x[k] = fromJSON(e)
		}
		return x
	}
	return v
}

// ReadYAML reads a sequence of mappings, or a mapping with an "instances"
// sequence, preserving key order. YAML's .nan reads as a missing value.
func ReadYAML(r io.Reader) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, &ParseError{Err: fmt.Errorf("read YAML: %w", err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return New(), nil
	}
	root := doc.Content[0]

	if root.Kind == yaml.MappingNode {
		var found *yaml.Node
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "instances" {
				found = root.Content[i+1]
				break
			}
		}
		if found == nil {
			return nil, &ParseError{Line: root.Line, Err: errors.New(`mapping has no "instances" sequence`)}
		}
		root = found
	}
	if root.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: root.Line, Err: errors.New("expected a sequence of records")}
	}

	set := newRecordSet()
	for n, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, &ParseError{Line: item.Line, Err: fmt.Errorf("record %d: expected mapping", n)}
		}
		keys := make([]string, 0, len(item.Content)/2)
		values := make([]any, 0, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			var v any
			if err := item.Content[i+1].Decode(&v); err != nil {
				return nil, &ParseError{Line: item.Content[i+1].Line, Err: err}
			}
			if n, ok := v.(int); ok {
				v = int64(n)
			}
			keys = append(keys, item.Content[i].Value)
			values = append(values, v)
		}
		set.add(keys, values)
	}
	return set.table(), nil
}
