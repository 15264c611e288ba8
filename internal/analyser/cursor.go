package analyser

import "github.com/cwbudde/c0c/internal/token"

// cursor walks a fully materialised token slice: the lexer runs to
// completion once, up front, before the analyser starts, so bounded
// lookahead and the grammar's occasional backtracking are both just
// index arithmetic over the slice — no separate unread buffer is
// needed, and the lexer is never re-driven.
type cursor struct {
	toks []token.Token
	pos  int
}

func newCursor(toks []token.Token) *cursor {
	return &cursor{toks: toks}
}

// cur returns the token at the cursor without consuming it.
func (c *cursor) cur() token.Token {
	return c.toks[c.pos]
}

// peek returns the token n positions ahead of cur, clamped to the
// final (EOF) token.
func (c *cursor) peek(n int) token.Token {
	i := c.pos + n
	if i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[i]
}

// next consumes and returns the current token.
func (c *cursor) next() token.Token {
	t := c.cur()
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

// mark returns a position that can later be restored with reset,
// implementing the grammar's backtracking points (the global/function
// top-level dispatch, and the speculative '(' of a cast prefix).
func (c *cursor) mark() int { return c.pos }

func (c *cursor) reset(mark int) { c.pos = mark }
