package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Start  int // index in []rune or original string
	End    int // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Value string // decoded value (for quoted references, same as Raw for others)
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Names and forward references
	IDENT  TokenType = "IDENT"  // str, PathLike, os.PathLike
	QUOTED TokenType = "QUOTED" // 'SomeClass' or "list[Fruit]"

	// Operators and delimiters
	PIPE     TokenType = "|"
	COMMA    TokenType = ","
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	ELLIPSIS TokenType = "..."
)
