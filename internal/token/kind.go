package token

// Kind enumerates the lexical token kinds.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	// Layout tokens synthesized by the lexer.
	Newline
	Indent
	Dedent

	Ident
	IntLit
	FloatLit
	StringLit

	// Keywords.
	KwDef
	KwReturn
	KwImport
	KwGlobal
	KwTrue
	KwFalse
	KwNone

	// Operators and punctuation.
	Plus       // +
	Minus      // -
	Star       // *
	At         // @
	Slash      // /
	Percent    // %
	Shl        // <<
	Shr        // >>
	Pipe       // |
	Caret      // ^
	Amp        // &
	SlashSlash // //
	StarStar   // **
	Assign     // =
	PlusAssign // +=
	MinusAssign // -=
	LParen     // (
	RParen     // )
	Colon      // :
	Comma      // ,
	Dot        // .
)

var kindNames = map[Kind]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Newline:     "Newline",
	Indent:      "Indent",
	Dedent:      "Dedent",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	KwDef:       "def",
	KwReturn:    "return",
	KwImport:    "import",
	KwGlobal:    "global",
	KwTrue:      "True",
	KwFalse:     "False",
	KwNone:      "None",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	At:          "@",
	Slash:       "/",
	Percent:     "%",
	Shl:         "<<",
	Shr:         ">>",
	Pipe:        "|",
	Caret:       "^",
	Amp:         "&",
	SlashSlash:  "//",
	StarStar:    "**",
	Assign:      "=",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	LParen:      "(",
	RParen:      ")",
	Colon:       ":",
	Comma:       ",",
	Dot:         ".",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
