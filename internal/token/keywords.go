package token

var keywords = map[string]Kind{
	"def":    KwDef,
	"return": KwReturn,
	"import": KwImport,
	"global": KwGlobal,
	"True":   KwTrue,
	"False":  KwFalse,
	"None":   KwNone,
}

// LookupKeyword maps a lexeme to its keyword kind, if it is one.
func LookupKeyword(lexeme string) (Kind, bool) {
	k, ok := keywords[lexeme]
	return k, ok
}
