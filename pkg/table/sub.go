package table

import (
	"fmt"
	"regexp"
	"strings"
)

type subKind int

const (
	subNone subKind = iota
	subLiteral
	subPattern
	subMapped
	subTransform
)

// Substitution rewrites a single cell value. Build one with Replace,
// ReplacePattern, ReplaceMapped or Transform; the zero value is invalid.
type Substitution struct {
	kind        subKind
	literal     string
	pattern     *regexp.Regexp
	replacement string
	mapping     map[string]string
	transform   func(string) string
}

// Replace substitutes the first occurrence of old with replacement.
func Replace(old, replacement string) Substitution {
	return Substitution{kind: subLiteral, literal: old, replacement: replacement}
}

// ReplacePattern substitutes the first match of re with template, in which
// $1, ${name} and similar refer to submatches as in regexp.Regexp.Expand.
func ReplacePattern(re *regexp.Regexp, template string) Substitution {
	return Substitution{kind: subPattern, pattern: re, replacement: template}
}

// ReplaceMapped substitutes the first match of re with mapping[match]. A
// match missing from mapping is left unchanged.
func ReplaceMapped(re *regexp.Regexp, mapping map[string]string) Substitution {
	return Substitution{kind: subMapped, pattern: re, mapping: mapping}
}

// Transform replaces every value v with fn(v).
func Transform(fn func(string) string) Substitution {
	return Substitution{kind: subTransform, transform: fn}
}

func (s Substitution) validate() error {
	switch s.kind {
	case subLiteral:
		if s.literal == "" {
			return fmt.Errorf("%w: empty match string", ErrInvalidMatchSpec)
		}
	case subPattern:
		if s.pattern == nil {
			return fmt.Errorf("%w: nil pattern", ErrInvalidMatchSpec)
		}
	case subMapped:
		if s.pattern == nil {
			return fmt.Errorf("%w: nil pattern", ErrInvalidMatchSpec)
		}
		if s.mapping == nil {
			return fmt.Errorf("%w: nil replacement mapping", ErrInvalidMatchSpec)
		}
	case subTransform:
		if s.transform == nil {
			return fmt.Errorf("%w: nil transform", ErrInvalidMatchSpec)
		}
	default:
		return fmt.Errorf("%w: no match or transform given", ErrInvalidMatchSpec)
	}
	return nil
}

// Apply returns v with the substitution applied.
func (s Substitution) Apply(v string) string {
	switch s.kind {
	case subLiteral:
		return strings.Replace(v, s.literal, s.replacement, 1)
	case subPattern:
		loc := s.pattern.FindStringSubmatchIndex(v)
		if loc == nil {
			return v
		}
		repl := s.pattern.ExpandString(nil, s.replacement, v, loc)
		return v[:loc[0]] + string(repl) + v[loc[1]:]
	case subMapped:
		loc := s.pattern.FindStringIndex(v)
		if loc == nil {
			return v
		}
		repl, ok := s.mapping[v[loc[0]:loc[1]]]
		if !ok {
			return v
		}
		return v[:loc[0]] + repl + v[loc[1]:]
	case subTransform:
		return s.transform(v)
	}
	return v
}

// Sub returns a copy of t in which every value of column name has s applied.
// The receiver is not modified.
func (t *Table) Sub(name string, s Substitution) (*Table, error) {
	if _, err := t.lookup(name); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.rewrite(name, s)
	return out, nil
}

// SubInPlace applies s to every value of column name in the receiver.
func (t *Table) SubInPlace(name string, s Substitution) (*Table, error) {
	if _, err := t.lookup(name); err != nil {
		return t, err
	}
	if err := s.validate(); err != nil {
		return t, err
	}
	t.rewrite(name, s)
	return t, nil
}

func (t *Table) rewrite(name string, s Substitution) {
	col := t.columns[name]
	for i, v := range col {
		col[i] = s.Apply(v)
	}
}
