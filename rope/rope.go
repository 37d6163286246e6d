// Package rope implements a persistent rope: an immutable tree of text
// chunks with byte, char, and line summaries so that indexed queries and
// edits run in O(log N). Ropes share structure, so cloning is free and a
// snapshot handed to a worker stays valid while the main thread edits.
package rope

import (
	"strings"
	"unicode/utf8"
)

// maxLeafBytes bounds leaf size. Splits never land inside a rune.
const maxLeafBytes = 512

// maxHeightSlack is how far the tree may drift from perfectly balanced
// before a concat rebuilds it from its leaves.
const maxHeightSlack = 8

// Rope is an immutable text value. The zero value is the empty rope.
type Rope struct {
	root *node
}

type node struct {
	// Leaf nodes carry text and nil children; internal nodes carry
	// children and empty text.
	text        string
	left, right *node

	bytes  int
	chars  int
	breaks int // number of '\n'
	height int
}

func (n *node) leaf() bool { return n.left == nil }

func newLeaf(text string) *node {
	return &node{
		text:   text,
		bytes:  len(text),
		chars:  utf8.RuneCountInString(text),
		breaks: strings.Count(text, "\n"),
		height: 1,
	}
}

func newInternal(left, right *node) *node {
	h := left.height
	if right.height > h {
		h = right.height
	}
	return &node{
		left:   left,
		right:  right,
		bytes:  left.bytes + right.bytes,
		chars:  left.chars + right.chars,
		breaks: left.breaks + right.breaks,
		height: h + 1,
	}
}

// New builds a rope from s.
func New(s string) Rope {
	if s == "" {
		return Rope{}
	}
	return Rope{root: buildBalanced(splitChunks(s))}
}

func splitChunks(s string) []*node {
	leaves := make([]*node, 0, len(s)/maxLeafBytes+1)
	for len(s) > 0 {
		n := len(s)
		if n > maxLeafBytes {
			n = maxLeafBytes
			// Back off to a rune boundary.
			for n > 0 && !utf8.RuneStart(s[n]) {
				n--
			}
			if n == 0 {
				n = len(s)
			}
		}
		leaves = append(leaves, newLeaf(s[:n]))
		s = s[n:]
	}
	return leaves
}

func buildBalanced(leaves []*node) *node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}
	mid := len(leaves) / 2
	return newInternal(buildBalanced(leaves[:mid]), buildBalanced(leaves[mid:]))
}

func collectLeaves(n *node, out []*node) []*node {
	if n == nil {
		return out
	}
	if n.leaf() {
		return append(out, n)
	}
	out = collectLeaves(n.left, out)
	return collectLeaves(n.right, out)
}

func concat(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	// Merge tiny leaves so repeated single-char edits don't shred the tree.
	if a.leaf() && b.leaf() && a.bytes+b.bytes <= maxLeafBytes {
		return newLeaf(a.text + b.text)
	}
	n := newInternal(a, b)
	if diff := a.height - b.height; diff > maxHeightSlack || diff < -maxHeightSlack {
		return buildBalanced(collectLeaves(n, nil))
	}
	return n
}

// LenChars returns the number of Unicode scalars.
func (r Rope) LenChars() int {
	if r.root == nil {
		return 0
	}
	return r.root.chars
}

// LenBytes returns the UTF-8 encoded length.
func (r Rope) LenBytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.bytes
}

// LenLines returns the number of lines. An empty rope has one (empty) line;
// a trailing newline starts a final empty line.
func (r Rope) LenLines() int {
	if r.root == nil {
		return 1
	}
	return r.root.breaks + 1
}

func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.bytes)
	appendNode(&sb, r.root)
	return sb.String()
}

func appendNode(sb *strings.Builder, n *node) {
	if n.leaf() {
		sb.WriteString(n.text)
		return
	}
	appendNode(sb, n.left)
	appendNode(sb, n.right)
}

// CharToByte converts a char index in 0..=LenChars to a byte offset.
// Out-of-range indices panic: callers own the bounds.
func (r Rope) CharToByte(c int) int {
	checkBounds(c, r.LenChars())
	if r.root == nil {
		return 0
	}
	return charToByte(r.root, c)
}

func charToByte(n *node, c int) int {
	if n.leaf() {
		return leafCharToByte(n.text, c)
	}
	if c <= n.left.chars {
		return charToByte(n.left, c)
	}
	return n.left.bytes + charToByte(n.right, c-n.left.chars)
}

func leafCharToByte(text string, c int) int {
	b := 0
	for ; c > 0; c-- {
		_, size := utf8.DecodeRuneInString(text[b:])
		b += size
	}
	return b
}

// ByteToChar converts a byte offset to a char index. The offset must land
// on a rune boundary in 0..=LenBytes.
func (r Rope) ByteToChar(b int) int {
	checkBounds(b, r.LenBytes())
	if r.root == nil {
		return 0
	}
	return byteToChar(r.root, b)
}

func byteToChar(n *node, b int) int {
	if n.leaf() {
		return utf8.RuneCountInString(n.text[:b])
	}
	if b <= n.left.bytes {
		return byteToChar(n.left, b)
	}
	return n.left.chars + byteToChar(n.right, b-n.left.bytes)
}

// CharToLine returns the line index containing char c.
func (r Rope) CharToLine(c int) int {
	checkBounds(c, r.LenChars())
	if r.root == nil {
		return 0
	}
	return charToLine(r.root, c)
}

func charToLine(n *node, c int) int {
	if n.leaf() {
		return strings.Count(n.text[:leafCharToByte(n.text, c)], "\n")
	}
	if c <= n.left.chars {
		return charToLine(n.left, c)
	}
	return n.left.breaks + charToLine(n.right, c-n.left.chars)
}

// LineToChar returns the char index of the first char of line l.
// LineToChar(LenLines()) returns LenChars() as an end sentinel.
func (r Rope) LineToChar(l int) int {
	lines := r.LenLines()
	checkBounds(l, lines)
	if l == lines || r.root == nil {
		return r.LenChars()
	}
	if l == 0 {
		return 0
	}
	return lineToChar(r.root, l)
}

// lineToChar returns the char index just past the l-th newline (1-based l).
func lineToChar(n *node, l int) int {
	if n.leaf() {
		b := 0
		for ; l > 0; l-- {
			i := strings.IndexByte(n.text[b:], '\n')
			b += i + 1
		}
		return utf8.RuneCountInString(n.text[:b])
	}
	if l <= n.left.breaks {
		return lineToChar(n.left, l)
	}
	return n.left.chars + lineToChar(n.right, l-n.left.breaks)
}

// Slice returns the sub-rope for the char range [from, to).
func (r Rope) Slice(from, to int) Rope {
	if from > to {
		panic("rope: slice range reversed")
	}
	checkBounds(from, r.LenChars())
	checkBounds(to, r.LenChars())
	if from == to || r.root == nil {
		return Rope{}
	}
	_, tail := split(r.root, from)
	mid, _ := split(tail, to-from)
	return Rope{root: mid}
}

// Concat returns the concatenation of r and other.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: concat(r.root, other.root)}
}

// Insert returns a rope with s inserted at char index at.
func (r Rope) Insert(at int, s string) Rope {
	if s == "" {
		return r
	}
	checkBounds(at, r.LenChars())
	left, right := split(r.root, at)
	return Rope{root: concat(concat(left, New(s).root), right)}
}

// Delete returns a rope with the char range [from, to) removed.
func (r Rope) Delete(from, to int) Rope {
	if from == to {
		return r
	}
	checkBounds(from, r.LenChars())
	checkBounds(to, r.LenChars())
	left, tail := split(r.root, from)
	_, right := split(tail, to-from)
	return Rope{root: concat(left, right)}
}

func split(n *node, at int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if at == 0 {
		return nil, n
	}
	if at == n.chars {
		return n, nil
	}
	if n.leaf() {
		b := leafCharToByte(n.text, at)
		return newLeaf(n.text[:b]), newLeaf(n.text[b:])
	}
	if at <= n.left.chars {
		l, r := split(n.left, at)
		return l, concat(r, n.right)
	}
	l, r := split(n.right, at-n.left.chars)
	return concat(n.left, l), r
}

// Line returns the content of line l without its line break.
func (r Rope) Line(l int) string {
	start, end := r.LineBounds(l)
	text := r.Slice(start, end).String()
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// LineBounds returns the char range [start, end) of line l including its
// line break, if any.
func (r Rope) LineBounds(l int) (start, end int) {
	return r.LineToChar(l), r.LineToChar(min(l+1, r.LenLines()))
}

// Chunks calls fn for each text chunk of the char range [from, to), in
// order, stopping early if fn returns false.
func (r Rope) Chunks(from, to int, fn func(chunk string) bool) {
	if from > to {
		panic("rope: chunk range reversed")
	}
	checkBounds(from, r.LenChars())
	checkBounds(to, r.LenChars())
	if r.root != nil {
		chunks(r.root, from, to, fn)
	}
}

func chunks(n *node, from, to int, fn func(string) bool) bool {
	if from >= to {
		return true
	}
	if n.leaf() {
		a := leafCharToByte(n.text, from)
		b := leafCharToByte(n.text, to)
		return fn(n.text[a:b])
	}
	if from < n.left.chars {
		hi := to
		if hi > n.left.chars {
			hi = n.left.chars
		}
		if !chunks(n.left, from, hi, fn) {
			return false
		}
	}
	if to > n.left.chars {
		lo := from - n.left.chars
		if lo < 0 {
			lo = 0
		}
		return chunks(n.right, lo, to-n.left.chars, fn)
	}
	return true
}

func checkBounds(v, max int) {
	if v < 0 || v > max {
		panic("rope: index out of range")
	}
}
