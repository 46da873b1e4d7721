package analysis

// AnalyzeHalstead computes Halstead operator/operand counts for a C
// source file.
//
// Classification follows the common convention for C: keywords, operators
// and punctuation are operators; identifiers and literals are operands.
// Paired brackets count once per pair so that "(" and ")" do not inflate
// the operator totals.
func AnalyzeHalstead(_, source string) (*HalsteadResult, error) {
	uniqueOperators := map[string]bool{}
	uniqueOperands := map[string]bool{}
	result := &HalsteadResult{}

	for _, tok := range lexC(source) {
		switch tok.kind {
		case tokenIdent, tokenNumber, tokenString, tokenChar:
			uniqueOperands[tok.text] = true
			result.TotalOperands++
		case tokenKeyword, tokenOperator:
			uniqueOperators[tok.text] = true
			result.TotalOperators++
		case tokenPunct:
			// Closing halves of bracket pairs are not counted
			switch tok.text {
			case ")", "]", "}":
				continue
			}
			uniqueOperators[tok.text] = true
			result.TotalOperators++
		}
	}

	result.UniqueOperators = len(uniqueOperators)
	result.UniqueOperands = len(uniqueOperands)

	return result, nil
}
