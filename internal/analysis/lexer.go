package analysis

import "strings"

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenKeyword
	tokenNumber
	tokenString
	tokenChar
	tokenOperator
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
}

// cKeywords covers C11 keywords. Keywords count as operators in the
// Halstead classification.
var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true,
}

// multiCharOperators ordered longest-first so maximal munch wins
var multiCharOperators = []string{
	"<<=", ">>=", "...",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
	"&&", "||", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lexC tokenizes C source. Comments and preprocessor directives are
// dropped; string and character literals are kept as single tokens.
func lexC(source string) []token {
	var tokens []token
	i := 0
	n := len(source)
	atLineStart := true

	for i < n {
		c := source[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
			continue
		case c == '\n':
			atLineStart = true
			i++
			continue
		case c == '#' && atLineStart:
			// Preprocessor directive: skip to end of line, honoring
			// backslash continuations.
			for i < n {
				if source[i] == '\n' && (i == 0 || source[i-1] != '\\') {
					break
				}
				i++
			}
			continue
		case strings.HasPrefix(source[i:], "//"):
			for i < n && source[i] != '\n' {
				i++
			}
			continue
		case strings.HasPrefix(source[i:], "/*"):
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				i = n
			} else {
				i += 2 + end + 2
			}
			continue
		}

		atLineStart = false

		switch {
		case c == '"':
			j := i + 1
			for j < n && source[j] != '"' {
				if source[j] == '\\' {
					j++
				}
				j++
			}
			if j < n {
				j++
			}
			tokens = append(tokens, token{tokenString, source[i:j]})
			i = j
		case c == '\'':
			j := i + 1
			for j < n && source[j] != '\'' {
				if source[j] == '\\' {
					j++
				}
				j++
			}
			if j < n {
				j++
			}
			tokens = append(tokens, token{tokenChar, source[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(source[j]) {
				j++
			}
			word := source[i:j]
			if cKeywords[word] {
				tokens = append(tokens, token{tokenKeyword, word})
			} else {
				tokens = append(tokens, token{tokenIdent, word})
			}
			i = j
		case isDigit(c) || (c == '.' && i+1 < n && isDigit(source[i+1])):
			j := i
			for j < n && (isIdentPart(source[j]) || source[j] == '.' ||
				((source[j] == '+' || source[j] == '-') && j > i && (source[j-1] == 'e' || source[j-1] == 'E'))) {
				j++
			}
			tokens = append(tokens, token{tokenNumber, source[i:j]})
			i = j
		default:
			matched := false
			for _, op := range multiCharOperators {
				if strings.HasPrefix(source[i:], op) {
					tokens = append(tokens, token{tokenOperator, op})
					i += len(op)
					matched = true
					break
				}
			}
			if matched {
				continue
			}

			switch c {
			case '(', ')', '[', ']', '{', '}', ';', ',':
				tokens = append(tokens, token{tokenPunct, string(c)})
			default:
				tokens = append(tokens, token{tokenOperator, string(c)})
			}
			i++
		}
	}

	return tokens
}
