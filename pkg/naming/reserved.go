package naming

// reservedWords are names a generated prop cannot take: props React consumes
// itself plus JavaScript keywords and future reserved words.
var reservedWords = []string{
	"children",
	"localName",
	"ref",
	"style",
	"className",
	"abstract",
	"arguments",
	"await",
	"boolean",
	"break",
	"byte",
	"case",
	"catch",
	"char",
	"class",
	"const",
	"continue",
	"debugger",
	"default",
	"delete",
	"do",
	"double",
	"else",
	"enum",
	"eval",
	"export",
	"extends",
	"false",
	"final",
	"finally",
	"float",
	"function",
	"goto",
	"if",
	"implements",
	"import",
	"in",
	"instanceof",
	"int",
	"interface",
	"let",
	"long",
	"native",
	"new",
	"null",
	"package",
	"private",
	"protected",
	"public",
	"return",
	"short",
	"static",
	"super",
	"switch",
	"synchronized",
	"this",
	"throw",
	"throws",
	"transient",
	"true",
	"try",
	"typeof",
	"var",
	"void",
	"volatile",
	"while",
	"with",
	"yield",
}

var reservedSet = func() map[string]bool {
	m := make(map[string]bool, len(reservedWords))
	for _, w := range reservedWords {
		m[w] = true
	}
	return m
}()

// IsReserved reports whether name collides with a React prop or a
// JavaScript reserved word. The check is case sensitive.
func IsReserved(name string) bool {
	return reservedSet[name]
}

// ReservedWords returns a copy of the reserved word table in declaration order.
func ReservedWords() []string {
	out := make([]string, len(reservedWords))
	copy(out, reservedWords)
	return out
}

// IsDestructurable reports whether a field can be pulled out of the props
// object by name in generated code. Reserved words plus "for" and "key" must
// stay on props.
func IsDestructurable(field string) bool {
	if field == "" || field == "for" || field == "key" {
		return false
	}
	return !IsReserved(field) && IsIdentifier(field)
}
