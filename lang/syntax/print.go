package syntax

import (
	"bufio"
	"io"
)

// Fprint writes the tree rooted at n to w, one node per line, drawn with
// box characters:
//
//	└──CompilationUnit
//	   ├──GlobalStatement
//	   │  └──VariableDeclaration
//	   │     ├──ConstKeyword const
//	   ...
func Fprint(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	fprint(bw, n, "", true)

	return bw.Flush()
}

func fprint(w *bufio.Writer, n Node, indent string, last bool) {
	marker := "├──"
	if last {
		marker = "└──"
	}

	w.WriteString(indent)
	w.WriteString(marker)
	w.WriteString(n.NodeKind().String())

	if t, ok := n.(Token); ok && t.Text != "" {
		w.WriteByte(' ')
		w.WriteString(t.Text)
	}

	w.WriteByte('\n')

	if last {
		indent += "   "
	} else {
		indent += "│  "
	}

	kids := children(n)
	for i, c := range kids {
		fprint(w, c, indent, i == len(kids)-1)
	}
}

// children flattens the fields of n, omitting absent nodes.
func children(n Node) []Node {
	var out []Node

	for _, f := range n.fields() {
		if f.list {
			out = append(out, f.nodes...)
		} else if !isNil(f.node) {
			out = append(out, f.node)
		}
	}

	return out
}

// Inspect traverses the tree rooted at n depth first, calling fn for each
// node including tokens. If fn returns false the children of that node are
// skipped.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}

	for _, c := range children(n) {
		Inspect(c, fn)
	}
}

// Map converts the tree rooted at n to nested maps and slices suitable for
// JSON or YAML encoding.
func Map(n Node) any {
	if isNil(n) {
		return nil
	}

	if t, ok := n.(Token); ok {
		m := map[string]any{
			"kind":   t.Kind.String(),
			"text":   t.Text,
			"line":   t.Location.Line,
			"column": t.Location.Column,
		}
		if t.Value != nil {
			m["value"] = t.Value
		}

		return m
	}

	m := map[string]any{"kind": n.NodeKind().String()}

	switch n := n.(type) {
	case *VarDecl:
		m["constant"] = n.Constant
	case *LiteralExpr:
		m["value"] = n.Value
	}

	for _, f := range n.fields() {
		if f.list {
			list := make([]any, 0, len(f.nodes))
			for _, c := range f.nodes {
				list = append(list, Map(c))
			}

			m[f.name] = list
		} else if !isNil(f.node) {
			m[f.name] = Map(f.node)
		}
	}

	return m
}

// isNil reports whether n is nil or holds a nil pointer.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *BlockStmt:
		return n == nil
	case *Else:
		return n == nil
	case *NameExpr:
		return n == nil
	default:
		return false
	}
}
