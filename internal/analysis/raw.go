package analysis

import "strings"

// AnalyzeRaw computes line-counting metrics for a C source file.
//
// Classification per line:
//   - blank: only whitespace
//   - comment: every non-whitespace character belongs to a comment
//   - physical (PLOC): at least one code character
//
// LLOC approximates statements: semicolons outside comments and literals,
// plus one for each control-flow construct that carries no semicolon of
// its own (if/else/for/while/switch/do and case labels).
func AnalyzeRaw(_, source string) (*RawResult, error) {
	result := &RawResult{}

	lines := strings.Split(source, "\n")
	// A trailing newline produces a final empty element, not an extra line
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	result.LOC = len(lines)

	inBlockComment := false
	for _, line := range lines {
		hasCode, hasComment, endsInBlock := classifyLine(line, inBlockComment)
		inBlockComment = endsInBlock

		switch {
		case hasCode:
			result.PLOC++
		case hasComment:
			result.Comments++
		default:
			result.Blanks++
		}
	}

	result.LLOC = countStatements(source)

	return result, nil
}

// classifyLine reports whether the line contains code or comment content,
// and whether a block comment continues past the end of the line.
func classifyLine(line string, inBlockComment bool) (hasCode, hasComment, stillInBlock bool) {
	i := 0
	n := len(line)
	stillInBlock = inBlockComment

	for i < n {
		c := line[i]

		if stillInBlock {
			hasComment = true
			if strings.HasPrefix(line[i:], "*/") {
				stillInBlock = false
				i += 2
				continue
			}
			i++
			continue
		}

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case strings.HasPrefix(line[i:], "//"):
			hasComment = true
			return hasCode, hasComment, stillInBlock
		case strings.HasPrefix(line[i:], "/*"):
			hasComment = true
			stillInBlock = true
			i += 2
		case c == '"':
			hasCode = true
			i++
			for i < n && line[i] != '"' {
				if line[i] == '\\' {
					i++
				}
				i++
			}
			i++
		default:
			hasCode = true
			i++
		}
	}

	return hasCode, hasComment, stillInBlock
}

// statementKeywords open a logical line without a trailing semicolon
var statementKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true,
	"switch": true, "do": true, "case": true, "default": true,
}

func countStatements(source string) int {
	count := 0
	for _, tok := range lexC(source) {
		switch {
		case tok.kind == tokenPunct && tok.text == ";":
			count++
		case tok.kind == tokenKeyword && statementKeywords[tok.text]:
			count++
		}
	}
	return count
}
