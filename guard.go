package morphlex

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/morphlex/morphlex/dom"
)

// Guards compile small boolean expressions into veto hooks, so callers can
// declare protection rules in configuration instead of writing callbacks.
// Each rule is an expr-lang program; a mutation is vetoed as soon as any
// rule evaluates to true.
//
// Attribute rules see:
//
//	tag      - local name of the element being updated
//	name     - attribute name
//	value    - new attribute value ("" on removal)
//	removing - whether the attribute is being removed
//
// Node rules see:
//
//	tag  - local name ("" for non-elements)
//	id   - the node's id attribute
//	kind - "element", "text", "comment", "cdata" or "doctype"
//
// Example: CompileAttributeGuard(`hasPrefix(name, "data-")`) keeps every
// data- attribute on the current tree untouched.

// AttributeGuard is compatible with Options.BeforeAttributeUpdated.
type AttributeGuard func(element *dom.Node, name string, newValue *string) bool

// NodeGuard is compatible with Options.BeforeNodeRemoved.
type NodeGuard func(node *dom.Node) bool

// CompileAttributeGuard compiles the rules into a hook that vetoes any
// attribute mutation matched by at least one rule.
func CompileAttributeGuard(rules ...string) (AttributeGuard, error) {
	progs, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return func(element *dom.Node, name string, newValue *string) bool {
		env := map[string]any{
			"tag":      element.TagName(),
			"name":     name,
			"value":    "",
			"removing": newValue == nil,
		}
		if newValue != nil {
			env["value"] = *newValue
		}
		return !anyRuleMatches(progs, env)
	}, nil
}

// CompileNodeGuard compiles the rules into a hook that vetoes the removal or
// replacement of any node matched by at least one rule.
func CompileNodeGuard(rules ...string) (NodeGuard, error) {
	progs, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return func(node *dom.Node) bool {
		env := map[string]any{
			"tag":  node.TagName(),
			"id":   node.ID(),
			"kind": kindName(node.Type),
		}
		return !anyRuleMatches(progs, env)
	}, nil
}

func compileRules(rules []string) ([]*vm.Program, error) {
	progs := make([]*vm.Program, 0, len(rules))
	for _, rule := range rules {
		p, err := expr.Compile(rule, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile guard rule %q: %w", rule, err)
		}
		progs = append(progs, p)
	}
	return progs, nil
}

func anyRuleMatches(progs []*vm.Program, env map[string]any) bool {
	for _, p := range progs {
		out, err := expr.Run(p, env)
		if err != nil {
			continue
		}
		if b, ok := out.(bool); ok && b {
			return true
		}
	}
	return false
}

func kindName(t dom.NodeType) string {
	switch t {
	case dom.ElementNode:
		return "element"
	case dom.TextNode:
		return "text"
	case dom.CommentNode:
		return "comment"
	case dom.CdataNode:
		return "cdata"
	case dom.DoctypeNode:
		return "doctype"
	}
	return "unknown"
}
