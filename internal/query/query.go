package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"odatatable/internal/model"

	"github.com/samber/lo"
)

// Request describes one page request against the list endpoint.
type Request struct {
	Top     int
	Skip    int
	Select  []model.Field
	Count   bool
	OrderBy string
	Filter  string
}

// Param is a single query parameter. Order is significant.
type Param struct {
	Key   string
	Value string
}

// Build turns page, sort and filter state into a request.
func Build(page model.PageState, sort []model.SortCriterion, filter []model.FilterCriterion) Request {
	current := page.CurrentPage
	if current < 1 {
		current = 1
	}
	return Request{
		Top:     page.ItemsPerPage,
		Skip:    (current - 1) * page.ItemsPerPage,
		Select:  append([]model.Field(nil), model.Fields...),
		Count:   true,
		OrderBy: OrderByClause(sort),
		Filter:  FilterClause(filter),
	}
}

// OrderByClause serializes sort keys as "Field dir" pairs, primary key first.
func OrderByClause(sort []model.SortCriterion) string {
	keys := lo.Map(sort, func(c model.SortCriterion, _ int) string {
		return fmt.Sprintf("%s %s", c.Field, c.Direction)
	})
	return strings.Join(keys, ",")
}

// FilterClause ANDs every valid criterion. Unsupported field/operator pairs are dropped.
func FilterClause(filter []model.FilterCriterion) string {
	exprs := lo.FilterMap(filter, func(c model.FilterCriterion, _ int) (string, bool) {
		expr := filterExpr(c)
		return expr, expr != ""
	})
	return strings.Join(exprs, " and ")
}

func filterExpr(c model.FilterCriterion) string {
	field := string(c.Field)
	if c.Field.IsNumeric() {
		switch c.Operator {
		case model.OperatorEq, model.OperatorGt, model.OperatorLt:
			return fmt.Sprintf("%s %s %s", field, c.Operator, c.Value)
		default:
			return ""
		}
	}
	if !lo.Contains(model.Fields, c.Field) {
		return ""
	}

	value := quote(c.Value)
	switch c.Operator {
	case model.OperatorEq:
		return fmt.Sprintf("tolower(%s) eq tolower(%s)", field, value)
	case model.OperatorStartsWith:
		return fmt.Sprintf("startswith(tolower(%s), tolower(%s))", field, value)
	case model.OperatorEndsWith:
		return fmt.Sprintf("endswith(tolower(%s), tolower(%s))", field, value)
	case model.OperatorIncludes:
		return fmt.Sprintf("contains(tolower(%s), tolower(%s))", field, value)
	default:
		return ""
	}
}

// quote renders an OData string literal; embedded quotes are doubled.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Params returns the query parameters in wire order. Empty clauses are omitted.
func (r Request) Params() []Param {
	selected := lo.Map(r.Select, func(f model.Field, _ int) string { return string(f) })
	params := []Param{
		{Key: "$top", Value: strconv.Itoa(r.Top)},
		{Key: "$skip", Value: strconv.Itoa(r.Skip)},
		{Key: "$select", Value: strings.Join(selected, ",")},
	}
	if r.Count {
		params = append(params, Param{Key: "$count", Value: "true"})
	}
	if r.OrderBy != "" {
		params = append(params, Param{Key: "$orderby", Value: r.OrderBy})
	}
	if r.Filter != "" {
		params = append(params, Param{Key: "$filter", Value: r.Filter})
	}
	return params
}

// Encode renders the parameters as a query string.
func (r Request) Encode() string {
	parts := lo.Map(r.Params(), func(p Param, _ int) string {
		return p.Key + "=" + escape(p.Value)
	})
	return strings.Join(parts, "&")
}

// URL appends the request to the endpoint, keeping any query the endpoint already has.
func (r Request) URL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.RawQuery != "" {
		u.RawQuery += "&" + r.Encode()
	} else {
		u.RawQuery = r.Encode()
	}
	return u.String(), nil
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
