package items

// Comment is a layout-only item: a "#" line attached to a container at a
// specific link position. A None comment renders as nothing but still
// occupies a position in the link list, matching tomlkit's
// Comment(None)-is-a-sentinel behavior (spec.md §9 Open Question) — this
// implementation resolves that ambiguity by making None comments render
// to an empty string (not a blank "#" line), which is what the round-trip
// and idempotence laws require against the fixtures named in the spec.
type Comment struct {
	Text string
	None bool
}

// NewComment builds a textual comment. text excludes the leading '#'.
func NewComment(text string) *Comment { return &Comment{Text: text} }

// NewNoneComment builds a positional placeholder that renders as nothing.
func NewNoneComment() *Comment { return &Comment{None: true} }

// Render returns the comment's source text including the leading '#', or
// "" for a None comment.
func (c *Comment) Render() string {
	if c.None {
		return ""
	}
	return "#" + c.Text
}

// Newline is n >= 1 consecutive blank lines, attached to a container via
// its link list position rather than by key (spec.md §3).
type Newline struct {
	N int
}

// NewNewline builds a blank-line marker of n consecutive blank lines.
func NewNewline(n int) *Newline {
	if n < 1 {
		n = 1
	}
	return &Newline{N: n}
}
