package diag

import "fmt"

// The methods below record the compiler's fixed error messages. Callers use
// them instead of formatting text inline so that every stage reports the same
// wording for the same condition.

func (b *Bag) InvalidNumber(loc Location, text string) {
	b.Errorf(loc, "The number %s is invalid.", text)
}

func (b *Bag) UnterminatedString(loc Location) {
	b.Errorf(loc, "Unterminated string literal.")
}

func (b *Bag) UnterminatedComment(loc Location) {
	b.Errorf(loc, "Unterminated multi-line comment.")
}

func (b *Bag) UnexpectedToken(loc Location, text, expected string) {
	b.Errorf(loc, "Unexpected token '%s', expected '%s'.", text, expected)
}

func (b *Bag) UnexpectedConstInitializer(loc Location, name string) {
	b.Errorf(loc, "Unexpected constant initializer '%s'.", name)
}

func (b *Bag) InvalidImport(loc Location, spec string) {
	b.Errorf(loc, "Invalid import declaration specifier '%s'.", spec)
}

func (b *Bag) InvalidImportKind(loc Location, kind fmt.Stringer) {
	b.Errorf(loc,
		"Must be an NameExpression or an LiteralExpression, not a %s.", kind)
}

func (b *Bag) CircularImport(loc Location, path string) {
	b.Errorf(loc, "Circular import of '%s'.", path)
}

func (b *Bag) InvalidExport(loc Location, kind fmt.Stringer) {
	b.Errorf(loc, "Invalid export declaration '%s'.", kind)
}

func (b *Bag) InvalidLiteral(loc Location) {
	b.Errorf(loc, "Invalid literal expression")
}

func (b *Bag) InvalidMemberAccess(loc Location, text string) {
	b.Errorf(loc, "Invalid member access expression '%s'.", text)
}

func (b *Bag) UndefinedVariable(loc Location, name string) {
	b.Errorf(loc, "Undefined variable '%s'.", name)
}

func (b *Bag) InvalidCall(loc Location, name string) {
	b.Errorf(loc, "Invalid call expression '%s'.", name)
}

func (b *Bag) AlreadyDeclared(loc Location, name string) {
	b.Errorf(loc, "Variable '%s' already declared.", name)
}

func (b *Bag) InvalidAssignment(loc Location, text string) {
	b.Errorf(loc, "Invalid assignment expression '%s'.", text)
}

func (b *Bag) ConstantReassigned(loc Location, name string) {
	b.Errorf(loc, "Constant '%s' cannot be reassigned.", name)
}

func (b *Bag) NeverDeclared(loc Location, name string) {
	b.Errorf(loc, "Variable '%s' never declared.", name)
}

func (b *Bag) InvalidBinary(loc Location, text string) {
	b.Errorf(loc, "Invalid binary expression '%s'.", text)
}

func (b *Bag) InvalidUnary(loc Location) {
	b.Errorf(loc, "Invalid unary expression")
}

func (b *Bag) InvalidFor(loc Location, name string) {
	b.Errorf(loc, "Invalid for statement '%s'.", name)
}

func (b *Bag) InvalidWhile(loc Location) {
	b.Errorf(loc, "Invalid while statement.")
}

func (b *Bag) DuplicateProperty(loc Location, name string) {
	b.Errorf(loc, "Duplicate property '%s'.", name)
}

func (b *Bag) NotImplemented(loc Location, kind fmt.Stringer) {
	b.Errorf(loc, "Not implemented: %s.", kind)
}
