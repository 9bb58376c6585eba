package attrs

import "fmt"

// Rule computes the concrete value for one Automatic attribute. A rule is a
// pure function of the primitive's other attributes and its raw input data;
// it must not depend on the resolution order of sibling Automatic attributes.
// A rule that needs another deferred attribute declares it in RuleSpec.Deps
// so the resolver can force it first.
type Rule interface {
	Resolve(rc *ResolveContext) (any, error)
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(rc *ResolveContext) (any, error)

// Resolve implements Rule.
func (f RuleFunc) Resolve(rc *ResolveContext) (any, error) {
	if f == nil {
		return nil, fmt.Errorf("rule function is nil")
	}
	return f(rc)
}

// RuleSpec binds a resolution rule to the attribute it resolves, together
// with the attributes the rule reads. Deps are force-resolved before the rule
// runs; a cycle among declared deps is rejected when the recipe registers.
type RuleSpec struct {
	Attr string
	Deps []string
	Rule Rule
}

// ExprRule returns a Rule that evaluates expression with evaluator. The
// expression sees the primitive's concrete attributes by name plus "input"
// and "type_name" bindings, the same environment the evaluator exposes
// elsewhere.
func ExprRule(evaluator Evaluator, expression string) Rule {
	return &exprRule{evaluator: evaluator, expression: expression}
}

type exprRule struct {
	evaluator  Evaluator
	expression string
}

func (r *exprRule) Resolve(rc *ResolveContext) (any, error) {
	if r.evaluator == nil {
		return nil, fmt.Errorf("expression rule %q has no evaluator", r.expression)
	}
	env := rc.concreteAttrs()
	// Inherited deps resolve through the theme chain without being cached
	// locally, so they are absent from the concrete snapshot; bind them
	// explicitly so the expression sees every declared dependency.
	for _, dep := range rc.inst.schema.ruleDeps[rc.attr] {
		if _, ok := env[dep]; ok {
			continue
		}
		v, err := rc.Get(dep)
		if err != nil {
			return nil, err
		}
		env[dep] = v
	}
	ctx := EvalContext{
		Attrs: env,
		Input: rc.Input(),
		Type:  rc.Type(),
		Attr:  rc.Attr(),
	}
	return r.evaluator.Evaluate(ctx, r.expression)
}

func ruleEngineName(rule Rule) string {
	switch rule.(type) {
	case RuleFunc:
		return "func"
	case *exprRule:
		return "expr"
	default:
		return "custom"
	}
}
