package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var errUnbalancedBody = errors.New("unbalanced braces in function body")

// AnalyzeCFG extracts a per-function control-flow graph from a C source
// file and renders each graph in DOT notation. Files without recognizable
// function definitions yield an empty result.
func AnalyzeCFG(_, source string) (CFGResult, error) {
	tokens := lexC(source)
	result := CFGResult{}

	for _, fn := range findFunctions(tokens) {
		dot, err := buildCFG(fn.name, fn.body)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", fn.name, err)
		}
		result[fn.name] = dot
	}

	return result, nil
}

type functionDef struct {
	name string
	body []token
}

// findFunctions locates top-level function definitions: an identifier
// directly followed by a parenthesized parameter list and an opening
// brace, at brace depth zero.
func findFunctions(tokens []token) []functionDef {
	var funcs []functionDef
	depth := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.kind == tokenPunct {
			switch tok.text {
			case "{":
				depth++
			case "}":
				depth--
			}
			continue
		}

		if depth != 0 || tok.kind != tokenIdent || i == 0 {
			continue
		}
		// Need a preceding type token, otherwise this is a call
		prev := tokens[i-1]
		if prev.kind != tokenKeyword && prev.kind != tokenIdent && !(prev.kind == tokenOperator && prev.text == "*") {
			continue
		}
		if i+1 >= len(tokens) || tokens[i+1].text != "(" {
			continue
		}

		// Find the matching close paren
		j := i + 1
		parens := 0
		for ; j < len(tokens); j++ {
			if tokens[j].text == "(" {
				parens++
			} else if tokens[j].text == ")" {
				parens--
				if parens == 0 {
					break
				}
			}
		}
		if j+1 >= len(tokens) || tokens[j+1].text != "{" {
			continue
		}

		// Capture the body tokens between the braces
		k := j + 1
		braces := 0
		for ; k < len(tokens); k++ {
			if tokens[k].text == "{" {
				braces++
			} else if tokens[k].text == "}" {
				braces--
				if braces == 0 {
					break
				}
			}
		}
		if k >= len(tokens) {
			break
		}

		funcs = append(funcs, functionDef{
			name: tok.text,
			body: tokens[j+2 : k],
		})

		i = k
	}

	return funcs
}

// pending is a dangling edge waiting for its destination node
type pending struct {
	from  int
	label string
}

type cfgNode struct {
	id    int
	label string
	shape string
}

type cfgEdge struct {
	from, to int
	label    string
}

type cfgBuilder struct {
	name  string
	toks  []token
	pos   int
	nodes []cfgNode
	edges []cfgEdge
}

const maxNodeLabelLen = 48

// buildCFG constructs the control-flow graph of one function body and
// renders it as a DOT digraph with entry and exit pseudo-nodes.
func buildCFG(name string, body []token) (string, error) {
	b := &cfgBuilder{name: name, toks: body}

	entry := b.addNode("entry", "ellipse")
	exits, err := b.parseStmtList([]pending{{from: entry}})
	if err != nil {
		return "", err
	}

	exit := b.addNode("exit", "ellipse")
	b.connect(exits, exit)
	b.resolveReturns(exit)

	return b.render(), nil
}

func (b *cfgBuilder) addNode(label, shape string) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, cfgNode{id: id, label: label, shape: shape})
	return id
}

func (b *cfgBuilder) connect(from []pending, to int) {
	for _, p := range from {
		b.edges = append(b.edges, cfgEdge{from: p.from, to: to, label: p.label})
	}
}

// returnEdge marks edges that must later resolve to the exit node
const returnTarget = -1

func (b *cfgBuilder) resolveReturns(exit int) {
	for i := range b.edges {
		if b.edges[i].to == returnTarget {
			b.edges[i].to = exit
		}
	}
}

// parseStmtList parses statements until a closing brace or the end of the
// body, threading dangling edges between consecutive statements.
func (b *cfgBuilder) parseStmtList(incoming []pending) ([]pending, error) {
	current := incoming

	for b.pos < len(b.toks) {
		if b.toks[b.pos].text == "}" {
			return current, nil
		}
		next, err := b.parseStmt(current)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return current, nil
}

func (b *cfgBuilder) parseStmt(incoming []pending) ([]pending, error) {
	tok := b.toks[b.pos]

	switch {
	case tok.text == "{":
		b.pos++
		exits, err := b.parseStmtList(incoming)
		if err != nil {
			return nil, err
		}
		if b.pos >= len(b.toks) || b.toks[b.pos].text != "}" {
			return nil, errUnbalancedBody
		}
		b.pos++
		return exits, nil

	case tok.kind == tokenKeyword && tok.text == "if":
		return b.parseIf(incoming)

	case tok.kind == tokenKeyword && (tok.text == "while" || tok.text == "switch"):
		return b.parseCondLoop(incoming, tok.text)

	case tok.kind == tokenKeyword && tok.text == "for":
		return b.parseCondLoop(incoming, "for")

	case tok.kind == tokenKeyword && tok.text == "do":
		return b.parseDoWhile(incoming)

	case tok.kind == tokenKeyword && tok.text == "return":
		node := b.addNode(b.collectSimple(), "box")
		b.connect(incoming, node)
		b.edges = append(b.edges, cfgEdge{from: node, to: returnTarget})
		return nil, nil

	default:
		node := b.addNode(b.collectSimple(), "box")
		b.connect(incoming, node)
		return []pending{{from: node}}, nil
	}
}

// parseIf handles if (cond) stmt [else stmt]
func (b *cfgBuilder) parseIf(incoming []pending) ([]pending, error) {
	b.pos++ // consume "if"
	cond := b.addNode("if "+b.collectParenExpr(), "diamond")
	b.connect(incoming, cond)

	thenExits, err := b.parseStmt([]pending{{from: cond, label: "true"}})
	if err != nil {
		return nil, err
	}

	if b.pos < len(b.toks) && b.toks[b.pos].text == "else" {
		b.pos++
		elseExits, err := b.parseStmt([]pending{{from: cond, label: "false"}})
		if err != nil {
			return nil, err
		}
		return append(thenExits, elseExits...), nil
	}

	return append(thenExits, pending{from: cond, label: "false"}), nil
}

// parseCondLoop handles while/for/switch: a condition node, a body whose
// exits loop back to the condition, and a false edge falling through.
// switch is approximated as a single decision node over its body.
func (b *cfgBuilder) parseCondLoop(incoming []pending, keyword string) ([]pending, error) {
	b.pos++ // consume keyword
	cond := b.addNode(keyword+" "+b.collectParenExpr(), "diamond")
	b.connect(incoming, cond)

	bodyExits, err := b.parseStmt([]pending{{from: cond, label: "true"}})
	if err != nil {
		return nil, err
	}

	if keyword == "switch" {
		return append(bodyExits, pending{from: cond, label: "false"}), nil
	}

	// Loop back edge
	b.connect(bodyExits, cond)
	return []pending{{from: cond, label: "false"}}, nil
}

// parseDoWhile handles do stmt while (cond);
func (b *cfgBuilder) parseDoWhile(incoming []pending) ([]pending, error) {
	b.pos++ // consume "do"
	bodyEntry := len(b.nodes)

	bodyExits, err := b.parseStmt(incoming)
	if err != nil {
		return nil, err
	}

	if b.pos < len(b.toks) && b.toks[b.pos].text == "while" {
		b.pos++
		cond := b.addNode("while "+b.collectParenExpr(), "diamond")
		b.connect(bodyExits, cond)
		if b.pos < len(b.toks) && b.toks[b.pos].text == ";" {
			b.pos++
		}
		if bodyEntry < len(b.nodes) {
			b.edges = append(b.edges, cfgEdge{from: cond, to: bodyEntry, label: "true"})
		}
		return []pending{{from: cond, label: "false"}}, nil
	}

	return bodyExits, nil
}

// collectParenExpr consumes a parenthesized expression and returns its text
func (b *cfgBuilder) collectParenExpr() string {
	if b.pos >= len(b.toks) || b.toks[b.pos].text != "(" {
		return "()"
	}

	var parts []string
	depth := 0
	for ; b.pos < len(b.toks); b.pos++ {
		t := b.toks[b.pos]
		parts = append(parts, t.text)
		if t.text == "(" {
			depth++
		} else if t.text == ")" {
			depth--
			if depth == 0 {
				b.pos++
				break
			}
		}
	}

	return truncateLabel(strings.Join(parts, " "))
}

// collectSimple consumes tokens up to and including the next semicolon at
// the current nesting level and returns the statement text.
func (b *cfgBuilder) collectSimple() string {
	var parts []string
	depth := 0

	for ; b.pos < len(b.toks); b.pos++ {
		t := b.toks[b.pos]
		if t.text == "(" || t.text == "[" {
			depth++
		} else if t.text == ")" || t.text == "]" {
			depth--
		}
		if t.text == ";" && depth <= 0 {
			b.pos++
			break
		}
		parts = append(parts, t.text)
	}

	return truncateLabel(strings.Join(parts, " "))
}

func truncateLabel(label string) string {
	if len(label) > maxNodeLabelLen {
		return label[:maxNodeLabelLen-3] + "..."
	}
	return label
}

// render emits the graph in DOT notation with deterministic ordering
func (b *cfgBuilder) render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "digraph %s {\n", sanitizeGraphName(b.name))
	for _, n := range b.nodes {
		shape := n.shape
		if shape == "" {
			shape = "box"
		}
		fmt.Fprintf(&sb, "  n%d [shape=%s, label=%q];\n", n.id, shape, n.label)
	}

	edges := make([]cfgEdge, len(b.edges))
	copy(edges, b.edges)
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	for _, e := range edges {
		if e.label != "" {
			fmt.Fprintf(&sb, "  n%d -> n%d [label=%q];\n", e.from, e.to, e.label)
		} else {
			fmt.Fprintf(&sb, "  n%d -> n%d;\n", e.from, e.to)
		}
	}
	sb.WriteString("}\n")

	return sb.String()
}

func sanitizeGraphName(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isIdentPart(c) {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "fn"
	}
	return sb.String()
}
