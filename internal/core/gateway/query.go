package gateway

import (
	"fmt"
	"reflect"
	"strings"
)

// Operator is a comparison understood by both drivers.
type Operator string

const (
	OpEq    Operator = "eq"
	OpNeq   Operator = "neq"
	OpGt    Operator = "gt"
	OpGte   Operator = "gte"
	OpLt    Operator = "lt"
	OpLte   Operator = "lte"
	OpLike  Operator = "like"
	OpILike Operator = "ilike"
	OpIs    Operator = "is"
)

// Filter restricts rows by comparing Column with Value.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// ILike matches rows whose column contains term, case-insensitively.
func ILike(column, term string) Filter {
	return Filter{Column: column, Op: OpILike, Value: "%" + term + "%"}
}

// Order sorts the result by Column.
type Order struct {
	Column     string
	Descending bool
}

// Query describes a Select. Filters are combined with AND; AnyOf is a single
// OR group ANDed with the rest.
type Query struct {
	Columns []string
	Filters []Filter
	AnyOf   []Filter
	Order   []Order
	Limit   int
}

// validate rejects filters a driver could not translate.
func (f Filter) validate() error {
	if strings.TrimSpace(f.Column) == "" {
		return fmt.Errorf("gateway: filter without column")
	}
	switch f.Op {
	case OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte, OpLike, OpILike:
		if f.Value == nil {
			return fmt.Errorf("gateway: %s filter on %s needs a value", f.Op, f.Column)
		}
	case OpIs:
		switch f.Value.(type) {
		case nil, bool:
		default:
			return fmt.Errorf("gateway: is filter on %s accepts null or a boolean", f.Column)
		}
	default:
		return fmt.Errorf("gateway: unsupported operator %q", f.Op)
	}
	return nil
}

func validateFilters(filters []Filter) error {
	for _, f := range filters {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

// scalar strips named types down to their underlying kind so enum-like values
// with a String method travel as the number or text the column stores.
func scalar(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	}
	return v
}
