package table

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Predicate decides whether a single cell value is kept by Where.
type Predicate interface {
	Match(value string) bool
}

// Func adapts an ordinary function to a Predicate.
type Func func(value string) bool

// Match calls f(value).
func (f Func) Match(value string) bool { return f(value) }

// Op is a comparison operator used by Compare and NumericCompare.
type Op int

// Comparison operators.
const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var opSymbols = map[Op]string{
	OpEq: "==",
	OpNe: "!=",
	OpLt: "<",
	OpLe: "<=",
	OpGt: ">",
	OpGe: ">=",
}

// String returns the operator's symbol.
func (o Op) String() string {
	if s, ok := opSymbols[o]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(o))
}

func (o Op) holds(c int) bool {
	switch o {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	}
	return false
}

// Comparison compares a cell value against a literal. Values are compared
// as text unless Numeric is set, in which case both sides are parsed as
// float64 and a value that does not parse never matches. NaN is not a number
// here. A nil *Comparison matches nothing.
type Comparison struct {
	Op      Op
	Literal string
	Numeric bool
	number  float64
}

// Match implements Predicate.
func (c *Comparison) Match(value string) bool {
	if c == nil {
		return false
	}
	if !c.Numeric {
		return c.Op.holds(strings.Compare(value, c.Literal))
	}
	v, ok := parseNumber(value)
	if !ok || math.IsNaN(c.number) {
		return false
	}
	switch {
	case v < c.number:
		return c.Op.holds(-1)
	case v > c.number:
		return c.Op.holds(1)
	default:
		return c.Op.holds(0)
	}
}

func (c *Comparison) String() string {
	if c.Numeric {
		return fmt.Sprintf("num %s %s", c.Op, c.Literal)
	}
	return fmt.Sprintf("%s %q", c.Op, c.Literal)
}

// Compare returns a predicate comparing values lexically against literal.
func Compare(op Op, literal string) *Comparison {
	return &Comparison{Op: op, Literal: literal}
}

// NumericCompare returns a predicate that converts each value to a number
// before comparing it against n. With n NaN it matches nothing.
func NumericCompare(op Op, n float64) *Comparison {
	return &Comparison{
		Op:      op,
		Literal: strconv.FormatFloat(n, 'g', -1, 64),
		Numeric: true,
		number:  n,
	}
}

// Eq matches values equal to s.
func Eq(s string) Predicate { return Compare(OpEq, s) }

// Ne matches values not equal to s.
func Ne(s string) Predicate { return Compare(OpNe, s) }

// Lt matches values lexically before s.
func Lt(s string) Predicate { return Compare(OpLt, s) }

// Le matches values lexically before or equal to s.
func Le(s string) Predicate { return Compare(OpLe, s) }

// Gt matches values lexically after s.
func Gt(s string) Predicate { return Compare(OpGt, s) }

// Ge matches values lexically after or equal to s.
func Ge(s string) Predicate { return Compare(OpGe, s) }

// Contains matches values containing substr.
func Contains(substr string) Predicate {
	return Func(func(v string) bool { return strings.Contains(v, substr) })
}

// HasPrefix matches values starting with prefix.
func HasPrefix(prefix string) Predicate {
	return Func(func(v string) bool { return strings.HasPrefix(v, prefix) })
}

// HasSuffix matches values ending with suffix.
func HasSuffix(suffix string) Predicate {
	return Func(func(v string) bool { return strings.HasSuffix(v, suffix) })
}

// Matches matches values in which re finds a match.
func Matches(re *regexp.Regexp) Predicate {
	return Func(re.MatchString)
}

// In matches values equal to any of values.
func In(values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Func(func(v string) bool {
		_, ok := set[v]
		return ok
	})
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return Func(func(v string) bool { return !p.Match(v) })
}

// And matches when every predicate matches. An empty And matches everything.
func And(ps ...Predicate) Predicate {
	return Func(func(v string) bool {
		for _, p := range ps {
			if !p.Match(v) {
				return false
			}
		}
		return true
	})
}

// Or matches when at least one predicate matches. An empty Or matches nothing.
func Or(ps ...Predicate) Predicate {
	return Func(func(v string) bool {
		for _, p := range ps {
			if p.Match(v) {
				return true
			}
		}
		return false
	})
}

// ParseCondition parses a condition of the form
//
//	[num] OP LITERAL
//
// where OP is one of == != < <= > >= =~ !~. LITERAL is a bare word, a single
// or double quoted string, or /regexp/ for the match operators. With the num
// prefix the value and literal are compared as numbers. For example:
//
//	== 'NY'
//	=~ /^New/
//	num > 1000000
//
// The text is only ever interpreted as one comparison; nothing is evaluated.
func ParseCondition(text string) (Predicate, error) {
	s := strings.TrimSpace(text)
	numeric := false
	if rest, ok := strings.CutPrefix(s, "num "); ok {
		numeric = true
		s = strings.TrimSpace(rest)
	}

	op, rest, ok := cutOperator(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q: missing operator", ErrInvalidCondition, text)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, fmt.Errorf("%w: %q: missing literal", ErrInvalidCondition, text)
	}

	if op == "=~" || op == "!~" {
		if numeric {
			return nil, fmt.Errorf("%w: %q: num cannot be used with %s", ErrInvalidCondition, text, op)
		}
		pattern := rest
		if len(rest) >= 2 && rest[0] == '/' && rest[len(rest)-1] == '/' {
			pattern = rest[1 : len(rest)-1]
		} else if lit, err := unquote(rest); err == nil {
			pattern = lit
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCondition, text, err)
		}
		if op == "!~" {
			return Not(Matches(re)), nil
		}
		return Matches(re), nil
	}

	lit, err := unquote(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCondition, text, err)
	}
	cmpOp := symbolOps[op]
	if numeric {
		n, ok := parseNumber(lit)
		if !ok {
			return nil, fmt.Errorf("%w: %q: %q is not a number", ErrInvalidCondition, text, lit)
		}
		return NumericCompare(cmpOp, n), nil
	}
	return Compare(cmpOp, lit), nil
}

var symbolOps = map[string]Op{
	"==": OpEq,
	"!=": OpNe,
	"<":  OpLt,
	"<=": OpLe,
	">":  OpGt,
	">=": OpGe,
}

// operators is ordered so that two-character symbols are tried first.
var operators = []string{"==", "!=", "<=", ">=", "=~", "!~", "<", ">"}

func cutOperator(s string) (op, rest string, ok bool) {
	for _, o := range operators {
		if r, found := strings.CutPrefix(s, o); found {
			return o, r, true
		}
	}
	return "", "", false
}

func unquote(s string) (string, error) {
	if len(s) >= 2 {
		q := s[0]
		if (q == '\'' || q == '"') && s[len(s)-1] == q {
			return s[1 : len(s)-1], nil
		}
	}
	if strings.ContainsAny(s, `'"`) {
		return "", fmt.Errorf("unbalanced quotes in %s", s)
	}
	return s, nil
}

// parseNumber converts s to a float64. NaN does not count as a number.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
