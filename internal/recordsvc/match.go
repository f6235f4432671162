package recordsvc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Match проверяет запись по всем условиям (логическое И).
func Match(r Record, where []Where) bool {
	for _, w := range where {
		if !matchOne(r[w.Field], w) {
			return false
		}
	}
	return true
}

func matchOne(v any, w Where) bool {
	if w.Operator == In {
		for _, x := range w.Values {
			if compare(v, x) == 0 {
				return true
			}
		}
		return false
	}
	if len(w.Values) == 0 {
		return true
	}
	want := w.Values[0]
	switch w.Operator {
	case EqualTo:
		return compare(v, want) == 0
	case NotEqualTo:
		return compare(v, want) != 0
	case GreaterThan:
		return v != nil && compare(v, want) > 0
	case GreaterThanOrEqualTo:
		return v != nil && compare(v, want) >= 0
	case LessThan:
		return v != nil && compare(v, want) < 0
	case LessThanOrEqualTo:
		return v != nil && compare(v, want) <= 0
	case Contains:
		if v == nil {
			return false
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(fmt.Sprint(want)))
	}
	return false
}

// Sort упорядочивает записи по списку ключей; nil идёт первым.
func Sort(records []Record, order []Order) {
	if len(order) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, o := range order {
			c := compare(records[i][o.Field], records[j][o.Field])
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// Project оставляет только перечисленные поля и id.
func Project(r Record, fields []string) Record {
	if len(fields) == 0 {
		return r.Clone()
	}
	out := Record{FieldID: r[FieldID]}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Page применяет offset/limit; limit <= 0 — без ограничения.
func Page(records []Record, limit, offset int) []Record {
	if offset > 0 {
		if offset >= len(records) {
			return nil
		}
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if fa, ok := Number(a); ok {
		if fb, ok := Number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Number приводит числовое значение записи к float64.
// Строки не приводятся: "10" и 10 сравниваются как строки.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// ID достаёт идентификатор записи из поля id.
func ID(r Record) (int64, bool) {
	switch v := r[FieldID].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}
