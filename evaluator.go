package attrs

import "time"

// EvalContext carries the inputs an expression-backed resolution rule can
// see: the owning primitive's concrete attributes, its positional input data,
// and free-form metadata supplied by the caller.
type EvalContext struct {
	// Attrs holds the currently concrete attribute values keyed by name.
	Attrs map[string]any
	// Input holds the primitive's positional input data.
	Input []any
	// Type is the owning primitive type name.
	Type string
	// Attr is the attribute being resolved.
	Attr string
	Now  *time.Time
	Args map[string]any
}

func (ctx EvalContext) withDefaults() EvalContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Attrs == nil {
		ctx.Attrs = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	ctx = ctx.withDefaults()
	return *ctx.Now
}

func (ctx EvalContext) attrLabel() string {
	if ctx.Type == "" {
		return ctx.Attr
	}
	return ctx.Type + "." + ctx.Attr
}

// Evaluator executes rule expressions against an evaluation context.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// ProgramCache stores compiled expression programs keyed by expression
// strings. Implementations must be safe for concurrent use when rules are
// shared across primitives.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}
