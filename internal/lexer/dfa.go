package lexer

// state identifies a node of the lexer's DFA. The transitions table below
// holds both the dispatch row (which scanning routine a byte sends the
// lexer into) and the rows that identifier, class-name and number
// scanning walk byte by byte (lexer.go's scanByTable). String literals and
// comments are scanned by hand-written loops outside the table.
type state int

const (
	stStart state = iota
	stIdent
	stClassName
	stNumber
	stString
	stSlash        // saw a single '/': may open a line or block comment
	stBlockComment // inside /* ... */, possibly nested
)

// class buckets an input byte into the character class the dispatch table
// is indexed by.
type class string

const (
	clsLower  class = "lower"
	clsUpper  class = "upper"
	clsDigit  class = "digit"
	clsWS     class = "ws"
	clsNL     class = "nl"
	clsQuote  class = "quote"
	clsSlash  class = "slash"
	clsOther  class = "other"
)

func classify(b byte) class {
	switch {
	case b >= 'a' && b <= 'z' || b == '_':
		return clsLower
	case b >= 'A' && b <= 'Z':
		return clsUpper
	case b >= '0' && b <= '9':
		return clsDigit
	case b == ' ' || b == '\t' || b == '\r':
		return clsWS
	case b == '\n':
		return clsNL
	case b == '"':
		return clsQuote
	case b == '/':
		return clsSlash
	default:
		return clsOther
	}
}

// transitions is the DFA's genuine state-by-character-class transition
// table (spec.md §4.1: "States identified by small integers... Transitions
// indexed by character classes"), not merely a one-shot dispatch: scanning
// an identifier/class-name/number runs entirely by repeated lookups into
// this table (lexer.go's scanIdentifier/scanClassName/scanNumber), the
// same `map[state]map[class]state` shape as
// _examples/original_source/lex_dfa.py's transition dict, rather than a
// switch or character-class predicate per scan routine.
var transitions = map[state]map[class]state{
	stStart: {
		clsLower: stIdent,
		clsUpper: stClassName,
		clsDigit: stNumber,
		clsQuote: stString,
		clsSlash: stSlash,
	},
	stIdent: {
		clsLower: stIdent,
		clsUpper: stIdent,
		clsDigit: stIdent,
	},
	stClassName: {
		clsLower: stClassName,
		clsUpper: stClassName,
		clsDigit: stClassName,
	},
	stNumber: {
		clsDigit: stNumber,
	},
}

// dispatch is transitions' stStart row: which class of byte sends the
// scanner into which state from the top of a new lexeme.
var dispatch = transitions[stStart]

// finalStates are the states in which, upon encountering a byte the DFA
// has no further transition for, the lexeme accumulated so far is a
// complete, acceptable token.
var finalStates = map[state]bool{
	stIdent:     true,
	stClassName: true,
	stNumber:    true,
	stString:    true,
}

// commentStates are states the DFA may be stuck in at EOF that represent an
// unterminated multi-line comment rather than a valid accepted lexeme.
var commentStates = map[state]bool{
	stBlockComment: true,
}

// twoByteOps lists every operator whose first byte is ambiguous between a
// one- and two-byte token; order doesn't matter since lookup is by map key.
var twoByteOps = map[[2]byte]bool{
	{'=', '='}: true,
	{'!', '='}: true,
	{'<', '='}: true,
	{'>', '='}: true,
	{'&', '&'}: true,
	{'|', '|'}: true,
}

// singlePunct is the set of single bytes accepted as a one-byte
// punctuation or operator token once twoByteOps above has not matched;
// punctKind in lexer.go gives each its token kind.
var singlePunct = map[byte]bool{
	'+': true, '-': true, '*': true, '/': true, '=': true,
	'<': true, '>': true, '!': true, '&': true, '|': true,
	';': true, ',': true, '.': true, '(': true, ')': true, '{': true, '}': true,
}
