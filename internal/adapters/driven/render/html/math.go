package html

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMath is the node kind of a math segment.
var KindMath = ast.NewNodeKind("Math")

// Math is an inline TeX segment.
type Math struct {
	ast.BaseInline

	// Display is true for $$..$$ and \[..\].
	Display bool

	// Literal is the TeX source without delimiters.
	Literal []byte
}

// Kind implements ast.Node.
func (n *Math) Kind() ast.NodeKind {
	return KindMath
}

// Dump implements ast.Node.
func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Display": fmt.Sprint(n.Display),
		"Literal": string(n.Literal),
	}, nil)
}

type delimiter struct {
	open, close string
	display     bool
}

// Longer openers first so $$ wins over $.
var delimiters = []delimiter{
	{open: "$$", close: "$$", display: true},
	{open: `\[`, close: `\]`, display: true},
	{open: `\(`, close: `\)`},
	{open: "$", close: "$"},
}

type mathParser struct{}

func (p *mathParser) Trigger() []byte {
	return []byte{'$', '\\'}
}

// Parse consumes a delimited math segment. Display math may span lines of
// the same paragraph. Unterminated segments return nil and stay literal.
func (p *mathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	d, ok := matchOpen(line)
	if !ok {
		return nil
	}

	savedLine, savedSeg := block.Position()
	block.Advance(len(d.open))

	var buf bytes.Buffer
	for {
		line, _ = block.PeekLine()
		if line == nil {
			break
		}
		if i := indexClose(line, d.close); i >= 0 {
			buf.Write(line[:i])
			literal := buf.Bytes()
			if !validLiteral(literal, d) {
				break
			}
			block.Advance(i + len(d.close))
			return &Math{Display: d.display, Literal: literal}
		}
		if !d.display {
			break
		}
		buf.Write(line)
		block.AdvanceLine()
	}

	block.SetPosition(savedLine, savedSeg)
	return nil
}

func matchOpen(line []byte) (delimiter, bool) {
	for _, d := range delimiters {
		if bytes.HasPrefix(line, []byte(d.open)) {
			return d, true
		}
	}
	return delimiter{}, false
}

// indexClose finds the first closing delimiter not escaped by a backslash.
func indexClose(line []byte, close string) int {
	for i := 0; i+len(close) <= len(line); i++ {
		if line[i] == '\\' && close[0] != '\\' {
			i++
			continue
		}
		if bytes.HasPrefix(line[i:], []byte(close)) {
			return i
		}
	}
	return -1
}

// validLiteral rejects empty segments, and inline dollar segments padded
// with spaces so prices like "$5 and $10" stay text.
func validLiteral(literal []byte, d delimiter) bool {
	if len(bytes.TrimSpace(literal)) == 0 {
		return false
	}
	if d.open != "$" {
		return true
	}
	first, last := literal[0], literal[len(literal)-1]
	return !util.IsSpace(first) && !util.IsSpace(last)
}

type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, r.renderMath)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
}

func (r *mathHTMLRenderer) renderMath(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Math)
	writeMath(w, n.Display, n.Literal)
	return ast.WalkSkipChildren, nil
}

// renderHTMLBlock writes raw HTML blocks such as styled <div> blocks with
// their math expanded. The inline parser never runs inside them.
func (r *mathHTMLRenderer) renderHTMLBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		var raw bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			raw.Write(line.Value(source))
		}
		// <pre>, <script>, <style>, <textarea> and comments stay verbatim.
		if n.HTMLBlockType == ast.HTMLBlockType1 || n.HTMLBlockType == ast.HTMLBlockType2 {
			_, _ = w.Write(raw.Bytes())
		} else {
			writeExpanded(w, raw.Bytes())
		}
		return ast.WalkContinue, nil
	}
	if n.HasClosure() {
		closure := n.ClosureLine
		_, _ = w.Write(closure.Value(source))
	}
	return ast.WalkContinue, nil
}

// writeExpanded copies src to w, replacing each delimited math segment with
// its span. Invalid or unterminated segments are copied unchanged.
func writeExpanded(w util.BufWriter, src []byte) {
	for i := 0; i < len(src); {
		c := src[i]
		if c != '$' && c != '\\' {
			_ = w.WriteByte(c)
			i++
			continue
		}
		if c == '\\' && i+1 < len(src) && src[i+1] == '$' {
			_, _ = w.Write(src[i : i+2])
			i += 2
			continue
		}
		d, ok := matchOpen(src[i:])
		if !ok {
			_ = w.WriteByte(c)
			i++
			continue
		}
		body := src[i+len(d.open):]
		if j := indexClose(body, d.close); j >= 0 {
			literal := body[:j]
			singleLine := d.display || !bytes.ContainsRune(literal, '\n')
			if singleLine && validLiteral(literal, d) {
				writeMath(w, d.display, literal)
				i += len(d.open) + j + len(d.close)
				continue
			}
		}
		_, _ = w.WriteString(d.open)
		i += len(d.open)
	}
}

func writeMath(w util.BufWriter, display bool, literal []byte) {
	open, close, class := `\(`, `\)`, "math inline"
	if display {
		open, close, class = `\[`, `\]`, "math display"
	}

	_, _ = w.WriteString(`<span class="` + class + `">` + open)
	_, _ = w.Write(util.EscapeHTML(literal))
	_, _ = w.WriteString(close + `</span>`)
}

// mathExtension adds math parsing and rendering to goldmark.
type mathExtension struct{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mathParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathHTMLRenderer{}, 500),
	))
}
