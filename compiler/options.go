package compiler

// Flags parameterize one Generator. They never change while it runs; a
// child generator for a special position gets its own copy.
type Flags struct {
	// SkipVarDecl renders a variable as its declarator only (name = init),
	// without type or terminator.
	SkipVarDecl bool
	// UseCommaInsteadOfSemi terminates a variable declaration with ", ".
	UseCommaInsteadOfSemi bool
	// NoEmptyInitList renders an initializer list without elements as
	// nothing, for positions that already supply the braces.
	NoEmptyInitList bool
	// ShowConstantExprValue annotates evaluated constant expressions with
	// their value.
	ShowConstantExprValue bool
	// SkipAccess drops access specifiers from declaration headers.
	SkipAccess bool
}

// Options configure a whole translation pass.
type Options struct {
	Flags Flags
	// ShowAllImplicitCasts also renders conversions that do not change
	// the value representation (lvalue-to-rvalue, no-op, decays).
	ShowAllImplicitCasts bool
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int
	// EmitHeaders prepends the includes the output depends on.
	EmitHeaders bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{IndentWidth: defaultIndentWidth, EmitHeaders: true}
}
