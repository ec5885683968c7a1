package cli

import (
	"fmt"
	"strings"

	"github.com/lox/notionctl/internal/output"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type FilterOp string

const (
	OpEquals    FilterOp = "="
	OpNotEquals FilterOp = "!="
	OpContains  FilterOp = "~"
)

type Clause struct {
	Property string
	Op       FilterOp
	Value    string
}

// Filter is a conjunction of clauses over simplified entry values.
type Filter struct {
	Clauses []Clause
}

// ParseFilter parses comma-separated clauses of the form Prop=value,
// Prop!=value or Prop~substring. An empty expression matches everything.
func ParseFilter(expr string) (Filter, error) {
	var f Filter
	if strings.TrimSpace(expr) == "" {
		return f, nil
	}

	for _, raw := range strings.Split(expr, ",") {
		part := strings.TrimSpace(raw)
		if part == "" {
			continue
		}
		clause, err := parseClause(part)
		if err != nil {
			return Filter{}, err
		}
		f.Clauses = append(f.Clauses, clause)
	}
	return f, nil
}

func parseClause(part string) (Clause, error) {
	for idx := 0; idx < len(part); idx++ {
		var op FilterOp
		switch {
		case strings.HasPrefix(part[idx:], string(OpNotEquals)):
			op = OpNotEquals
		case part[idx] == '~':
			op = OpContains
		case part[idx] == '=':
			op = OpEquals
		default:
			continue
		}
		name := strings.TrimSpace(part[:idx])
		if name == "" {
			return Clause{}, &output.UserError{Message: fmt.Sprintf("invalid filter clause %q: missing property name", part)}
		}
		return Clause{
			Property: name,
			Op:       op,
			Value:    strings.TrimSpace(part[idx+len(op):]),
		}, nil
	}
	return Clause{}, &output.UserError{Message: fmt.Sprintf("invalid filter clause %q: expected Prop=value, Prop!=value or Prop~text", part)}
}

func (f Filter) Empty() bool {
	return len(f.Clauses) == 0
}

// Properties lists the property names the filter reads.
func (f Filter) Properties() []string {
	names := make([]string, 0, len(f.Clauses))
	for _, c := range f.Clauses {
		names = append(names, c.Property)
	}
	return names
}

// Match reports whether every clause holds for values. Property names and
// values compare case-insensitively; list values match when any member does.
func (f Filter) Match(values *orderedmap.OrderedMap[string, any]) bool {
	for _, c := range f.Clauses {
		if !c.match(lookup(values, c.Property)) {
			return false
		}
	}
	return true
}

func (c Clause) match(v any) bool {
	want := strings.ToLower(c.Value)

	var cells []string
	if list, ok := v.([]any); ok {
		for _, item := range list {
			cells = append(cells, strings.ToLower(output.FormatCell(item)))
		}
	} else {
		cells = []string{strings.ToLower(output.FormatCell(v))}
	}
	if len(cells) == 0 {
		cells = []string{""}
	}

	switch c.Op {
	case OpEquals:
		return containsCell(cells, want)
	case OpNotEquals:
		return !containsCell(cells, want)
	case OpContains:
		for _, cell := range cells {
			if strings.Contains(cell, want) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func containsCell(cells []string, want string) bool {
	for _, cell := range cells {
		if cell == want {
			return true
		}
	}
	return false
}

func lookup(values *orderedmap.OrderedMap[string, any], name string) any {
	if values == nil {
		return nil
	}
	if v, ok := values.Get(name); ok {
		return v
	}
	for pair := values.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, name) {
			return pair.Value
		}
	}
	return nil
}
