package nbastats

import (
	"math"
	"strconv"
	"strings"
)

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type resultSets []resultSet

// named returns the set called name, falling back to the first set. ok is
// false when the payload has no sets at all.
func (s resultSets) named(name string) (resultSet, bool) {
	for _, rs := range s {
		if strings.EqualFold(rs.Name, name) {
			return rs, true
		}
	}
	if len(s) > 0 {
		return s[0], true
	}
	return resultSet{}, false
}

func (rs resultSet) rows() []row {
	index := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		index[strings.ToUpper(h)] = i
	}
	out := make([]row, 0, len(rs.RowSet))
	for _, values := range rs.RowSet {
		out = append(out, row{index: index, values: values})
	}
	return out
}

// row gives typed access to one column-indexed row. Missing columns, nulls
// and values of an unexpected type read as the zero value.
type row struct {
	index  map[string]int
	values []any
}

func (r row) value(col string) any {
	i, ok := r.index[col]
	if !ok || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

func (r row) text(col string) string {
	switch v := r.value(col).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (r row) integer(col string) int {
	switch v := r.value(col).(type) {
	case float64:
		return int(math.Round(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (r row) decimal(col string) float64 {
	switch v := r.value(col).(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
