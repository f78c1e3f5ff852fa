package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownOperator  = errors.New("unknown operator")
	ErrUnknownDirection = errors.New("unknown direction")
)

// Field is a column of the people collection.
type Field string

const (
	FieldUserName   Field = "UserName"
	FieldFirstName  Field = "FirstName"
	FieldLastName   Field = "LastName"
	FieldMiddleName Field = "MiddleName"
	FieldGender     Field = "Gender"
	FieldAge        Field = "Age"
)

// Fields lists every column in display order.
var Fields = []Field{
	FieldUserName,
	FieldFirstName,
	FieldLastName,
	FieldMiddleName,
	FieldGender,
	FieldAge,
}

// Label returns the human readable column name.
func (f Field) Label() string {
	switch f {
	case FieldUserName:
		return "Username"
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldMiddleName:
		return "Middle Name"
	case FieldGender:
		return "Gender"
	case FieldAge:
		return "Age"
	default:
		return string(f)
	}
}

// IsNumeric reports whether the field is compared as a number.
func (f Field) IsNumeric() bool {
	return f == FieldAge
}

// ParseField resolves a field name case-insensitively.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Direction is a sort direction.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Directions lists the sort directions in selector order.
var Directions = []Direction{DirectionAsc, DirectionDesc}

func (d Direction) Label() string {
	if d == DirectionDesc {
		return "Descending"
	}
	return "Ascending"
}

// ParseDirection accepts asc/desc in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return DirectionAsc, nil
	case "desc":
		return DirectionDesc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Operator is a filter comparison.
type Operator string

const (
	OperatorEq         Operator = "eq"
	OperatorStartsWith Operator = "startsWith"
	OperatorEndsWith   Operator = "endsWith"
	OperatorIncludes   Operator = "includes"
	OperatorGt         Operator = "gt"
	OperatorLt         Operator = "lt"
)

var (
	textOperators    = []Operator{OperatorEq, OperatorStartsWith, OperatorEndsWith, OperatorIncludes}
	numericOperators = []Operator{OperatorEq, OperatorGt, OperatorLt}
)

// OperatorsFor returns the operators offered for a field. The first entry is the default.
func OperatorsFor(f Field) []Operator {
	if f.IsNumeric() {
		return append([]Operator(nil), numericOperators...)
	}
	return append([]Operator(nil), textOperators...)
}

// Supports reports whether op is valid for the field.
func (f Field) Supports(op Operator) bool {
	for _, candidate := range OperatorsFor(f) {
		if candidate == op {
			return true
		}
	}
	return false
}

func (o Operator) Label() string {
	switch o {
	case OperatorEq:
		return "Equal To"
	case OperatorStartsWith:
		return "Starts With"
	case OperatorEndsWith:
		return "Ends With"
	case OperatorIncludes:
		return "Includes"
	case OperatorGt:
		return "Greater Than"
	case OperatorLt:
		return "Less Than"
	default:
		return string(o)
	}
}

// ParseOperator resolves an operator name case-insensitively.
func ParseOperator(s string) (Operator, error) {
	all := []Operator{OperatorEq, OperatorStartsWith, OperatorEndsWith, OperatorIncludes, OperatorGt, OperatorLt}
	for _, op := range all {
		if strings.EqualFold(string(op), strings.TrimSpace(s)) {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// SortCriterion is one key of a multi-key sort. Slice order is priority order.
type SortCriterion struct {
	Field     Field
	Direction Direction
}

// FilterCriterion is one ANDed filter condition.
type FilterCriterion struct {
	Field    Field
	Operator Operator
	Value    string
}

// ParseSortCriterion parses "Field" or "Field:dir".
func ParseSortCriterion(s string) (SortCriterion, error) {
	name, dir, hasDir := strings.Cut(s, ":")
	field, err := ParseField(name)
	if err != nil {
		return SortCriterion{}, err
	}
	direction := DirectionAsc
	if hasDir {
		direction, err = ParseDirection(dir)
		if err != nil {
			return SortCriterion{}, err
		}
	}
	return SortCriterion{Field: field, Direction: direction}, nil
}

// ParseFilterCriterion parses "Field:operator:value". The value may contain colons.
func ParseFilterCriterion(s string) (FilterCriterion, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return FilterCriterion{}, fmt.Errorf("filter %q: expected Field:operator:value", s)
	}
	field, err := ParseField(parts[0])
	if err != nil {
		return FilterCriterion{}, err
	}
	op, err := ParseOperator(parts[1])
	if err != nil {
		return FilterCriterion{}, err
	}
	return FilterCriterion{Field: field, Operator: op, Value: parts[2]}, nil
}

// Person is a row of the people collection. Every field is optional.
type Person struct {
	UserName   string `json:"UserName"`
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	MiddleName string `json:"MiddleName"`
	Gender     string `json:"Gender"`
	Age        *int64 `json:"Age"`
}

// Value returns the raw display value of a field, "" when absent.
func (p Person) Value(f Field) string {
	switch f {
	case FieldUserName:
		return p.UserName
	case FieldFirstName:
		return p.FirstName
	case FieldLastName:
		return p.LastName
	case FieldMiddleName:
		return p.MiddleName
	case FieldGender:
		return p.Gender
	case FieldAge:
		if p.Age == nil {
			return ""
		}
		return fmt.Sprintf("%d", *p.Age)
	default:
		return ""
	}
}

// PageSizeOptions is the fixed set of page sizes.
var PageSizeOptions = []int{5, 10, 25, 50}

// DefaultPageSize is used when nothing else is configured.
const DefaultPageSize = 10

// PageState is the pagination tuple.
type PageState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalCount   int
}
