package document

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/go-drift/xtype/pkg/core"
)

// Lint rule names reported in Issue.Keyword.
const (
	RuleColor       = "color"
	RuleDuplicateID = "duplicate-id"
	RuleUnknownType = "unknown-xtype"
)

// paintKeys are the attribute and style keys whose values are colours.
var paintKeys = map[string]bool{
	"color":          true,
	"fill":           true,
	"flood-color":    true,
	"lighting-color": true,
	"stop-color":     true,
	"stroke":         true,
}

// paintKeywords are accepted paint values that are not named colours.
var paintKeywords = map[string]bool{
	"none":           true,
	"currentcolor":   true,
	"transparent":    true,
	"inherit":        true,
	"initial":        true,
	"unset":          true,
	"context-fill":   true,
	"context-stroke": true,
}

// Lint reports problems the schema cannot express: unknown colour keywords
// in paint attributes and styles, identities declared more than once in the
// same scope, and type tags for which known returns false. A nil known skips
// the type check.
func Lint(d *Document, known func(tag string) bool) []Issue {
	var issues []Issue
	seen := make(map[string]string)

	d.Walk(func(path string, cfg *core.Config) {
		if known != nil && cfg.Type != "" && !known(cfg.Type) {
			issues = append(issues, Issue{
				Path:    path + "/xtype",
				Message: fmt.Sprintf("type tag %q is not registered", cfg.Type),
				Keyword: RuleUnknownType,
			})
		}
		if cfg.ID != "" {
			key := core.Key(cfg.ID, cfg.Scope)
			if first, ok := seen[key]; ok {
				issues = append(issues, Issue{
					Path:    path + "/id",
					Message: fmt.Sprintf("%s is already declared at %s and will be overwritten", key, first),
					Keyword: RuleDuplicateID,
				})
			} else {
				seen[key] = path
			}
		}
		issues = append(issues, lintPaint(path+"/attr", cfg.Attributes)...)
		issues = append(issues, lintPaint(path+"/style", cfg.Style)...)
	})
	return issues
}

func lintPaint(path string, m core.Map) []Issue {
	var issues []Issue
	for _, p := range m {
		if !paintKeys[p.Key] {
			continue
		}
		v, ok := p.Value.(string)
		if !ok || !isKeyword(v) {
			continue
		}
		name := strings.ToLower(v)
		if paintKeywords[name] {
			continue
		}
		if _, ok := colornames.Map[name]; ok {
			continue
		}
		issues = append(issues, Issue{
			Path:    path + "/" + p.Key,
			Message: fmt.Sprintf("%q is not a named colour", v),
			Keyword: RuleColor,
		})
	}
	return issues
}

// isKeyword reports whether v is a bare identifier rather than a hex, url()
// or functional colour.
func isKeyword(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-') {
			return false
		}
	}
	return true
}
