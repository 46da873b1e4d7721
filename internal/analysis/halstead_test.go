package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeHalstead(t *testing.T) {
	// Tokens: int add ( int a , int b ) { return a + b ; }
	// Operators: int, (, ,, {, return, +, ;  -> with totals
	// Operands: add, a, b
	source := "int add(int a, int b) { return a + b; }"

	result, err := AnalyzeHalstead("add.c", source)
	require.NoError(t, err)

	// unique operators: int ( , { return + ;
	assert.Equal(t, 7, result.UniqueOperators)
	// unique operands: add a b
	assert.Equal(t, 3, result.UniqueOperands)
	// totals: int x3, ( x1, , x1, { x1, return x1, + x1, ; x1
	assert.Equal(t, 9, result.TotalOperators)
	// totals: add, a x2, b x2
	assert.Equal(t, 5, result.TotalOperands)
}

func TestAnalyzeHalsteadLiterals(t *testing.T) {
	source := `int x = 42; char *s = "hi"; char c = 'a';`

	result, err := AnalyzeHalstead("lit.c", source)
	require.NoError(t, err)

	// operands: x, 42, s, "hi", c, 'a' -- all unique
	assert.Equal(t, 6, result.UniqueOperands)
	assert.Equal(t, 6, result.TotalOperands)
}

func TestAnalyzeHalsteadEmptySource(t *testing.T) {
	result, err := AnalyzeHalstead("empty.c", "")
	require.NoError(t, err)
	assert.Equal(t, HalsteadResult{}, *result)
}

func TestAnalyzeHalsteadCommentsIgnored(t *testing.T) {
	withComments, err := AnalyzeHalstead("c.c", "// int unused;\nint x;\n/* y = 2; */")
	require.NoError(t, err)

	bare, err := AnalyzeHalstead("c.c", "int x;")
	require.NoError(t, err)

	assert.Equal(t, *bare, *withComments)
}
