package vim

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// SelectFunc finds the text object around p. count repeats word and
// paragraph objects and picks the count-th enclosing bracket pair. ok is
// false when there is no such object.
type SelectFunc func(b *buffer.Buffer, p buffer.Position, count int) (r Range, ok bool)

// TextObject represents a Vim text object.
// Text objects select regions of text based on structure rather than
// motion. Each kind comes in an inner (i) and an around (a) variant, which
// are separate TextObjects here.
type TextObject struct {
	// Name is the text object identifier (e.g., "innerWord").
	Name string

	// Keys is the default key sequence (e.g., "iw").
	Keys string

	// Action is the action name bound in keymaps (e.g., "textobj.innerWord").
	Action string

	// Select finds the object.
	Select SelectFunc
}

// Standard text objects.
var (
	TextObjInnerWord  = TextObject{Name: "innerWord", Keys: "iw", Action: "textobj.innerWord", Select: selectWord(false, false)}
	TextObjAroundWord = TextObject{Name: "aroundWord", Keys: "aw", Action: "textobj.aroundWord", Select: selectWord(false, true)}
	TextObjInnerWORD  = TextObject{Name: "innerWORD", Keys: "iW", Action: "textobj.innerWORD", Select: selectWord(true, false)}
	TextObjAroundWORD = TextObject{Name: "aroundWORD", Keys: "aW", Action: "textobj.aroundWORD", Select: selectWord(true, true)}

	TextObjInnerParagraph  = TextObject{Name: "innerParagraph", Keys: "ip", Action: "textobj.innerParagraph", Select: selectParagraph(false)}
	TextObjAroundParagraph = TextObject{Name: "aroundParagraph", Keys: "ap", Action: "textobj.aroundParagraph", Select: selectParagraph(true)}

	TextObjInnerParen    = TextObject{Name: "innerParen", Keys: "i(", Action: "textobj.innerParen", Select: selectPair('(', ')', false)}
	TextObjAroundParen   = TextObject{Name: "aroundParen", Keys: "a(", Action: "textobj.aroundParen", Select: selectPair('(', ')', true)}
	TextObjInnerBracket  = TextObject{Name: "innerBracket", Keys: "i[", Action: "textobj.innerBracket", Select: selectPair('[', ']', false)}
	TextObjAroundBracket = TextObject{Name: "aroundBracket", Keys: "a[", Action: "textobj.aroundBracket", Select: selectPair('[', ']', true)}
	TextObjInnerBrace    = TextObject{Name: "innerBrace", Keys: "i{", Action: "textobj.innerBrace", Select: selectPair('{', '}', false)}
	TextObjAroundBrace   = TextObject{Name: "aroundBrace", Keys: "a{", Action: "textobj.aroundBrace", Select: selectPair('{', '}', true)}
	TextObjInnerAngle    = TextObject{Name: "innerAngle", Keys: "i<lt>", Action: "textobj.innerAngle", Select: selectPair('<', '>', false)}
	TextObjAroundAngle   = TextObject{Name: "aroundAngle", Keys: "a<lt>", Action: "textobj.aroundAngle", Select: selectPair('<', '>', true)}

	TextObjInnerDoubleQuote  = TextObject{Name: "innerDoubleQuote", Keys: `i"`, Action: "textobj.innerDoubleQuote", Select: selectQuote('"', false)}
	TextObjAroundDoubleQuote = TextObject{Name: "aroundDoubleQuote", Keys: `a"`, Action: "textobj.aroundDoubleQuote", Select: selectQuote('"', true)}
	TextObjInnerSingleQuote  = TextObject{Name: "innerSingleQuote", Keys: "i'", Action: "textobj.innerSingleQuote", Select: selectQuote('\'', false)}
	TextObjAroundSingleQuote = TextObject{Name: "aroundSingleQuote", Keys: "a'", Action: "textobj.aroundSingleQuote", Select: selectQuote('\'', true)}
	TextObjInnerBacktick     = TextObject{Name: "innerBacktick", Keys: "i`", Action: "textobj.innerBacktick", Select: selectQuote('`', false)}
	TextObjAroundBacktick    = TextObject{Name: "aroundBacktick", Keys: "a`", Action: "textobj.aroundBacktick", Select: selectQuote('`', true)}
)

var textObjects = []*TextObject{
	&TextObjInnerWord, &TextObjAroundWord,
	&TextObjInnerWORD, &TextObjAroundWORD,
	&TextObjInnerParagraph, &TextObjAroundParagraph,
	&TextObjInnerParen, &TextObjAroundParen,
	&TextObjInnerBracket, &TextObjAroundBracket,
	&TextObjInnerBrace, &TextObjAroundBrace,
	&TextObjInnerAngle, &TextObjAroundAngle,
	&TextObjInnerDoubleQuote, &TextObjAroundDoubleQuote,
	&TextObjInnerSingleQuote, &TextObjAroundSingleQuote,
	&TextObjInnerBacktick, &TextObjAroundBacktick,
}

// LookupTextObject returns the text object bound to a keymap action name.
func LookupTextObject(action string) (TextObject, bool) {
	for _, obj := range textObjects {
		if obj.Action == action {
			return *obj, true
		}
	}
	return TextObject{}, false
}

// Empty reports whether a charwise range covers no characters.
func (r Range) Empty() bool {
	return !r.Linewise && !r.Start.Before(r.End)
}

// wordClass is buffer.ClassOf, or for WORDs only space versus non-space.
func wordClass(big bool) func(rune) buffer.CharClass {
	if !big {
		return buffer.ClassOf
	}
	return func(r rune) buffer.CharClass {
		if buffer.ClassOf(r) == buffer.ClassSpace {
			return buffer.ClassSpace
		}
		return buffer.ClassWord
	}
}

// selectWord builds iw/aw (and iW/aW). Inner counts whitespace runs as
// words; around takes each word with its trailing whitespace, or with the
// leading whitespace when none trails.
func selectWord(big, around bool) SelectFunc {
	class := wordClass(big)
	runEnd := func(line []rune, i int) int {
		c := class(line[i])
		for i < len(line) && class(line[i]) == c {
			i++
		}
		return i
	}
	return func(b *buffer.Buffer, p buffer.Position, count int) (Range, bool) {
		line := []rune(b.Line(p.Row))
		if len(line) == 0 {
			return Range{}, false
		}
		col := min(p.Col, len(line)-1)
		start := col
		for start > 0 && class(line[start-1]) == class(line[col]) {
			start--
		}
		onSpace := class(line[col]) == buffer.ClassSpace

		end := start
		trailing := false
		for range repeat(count) {
			if end >= len(line) {
				break
			}
			if !around {
				end = runEnd(line, end)
				continue
			}
			if class(line[end]) == buffer.ClassSpace {
				end = runEnd(line, end)
				if end < len(line) {
					end = runEnd(line, end)
				}
				continue
			}
			end = runEnd(line, end)
			trailing = end < len(line) && class(line[end]) == buffer.ClassSpace
			if trailing {
				end = runEnd(line, end)
			}
		}
		if around && !onSpace && !trailing {
			for start > 0 && class(line[start-1]) == buffer.ClassSpace {
				start--
			}
		}
		return Range{
			Start: buffer.Position{Row: p.Row, Col: start},
			End:   buffer.Position{Row: p.Row, Col: end},
		}, true
	}
}

func blankLine(s string) bool {
	return strings.TrimSpace(s) == ""
}

// selectParagraph builds ip/ap. Paragraphs are separated by lines holding
// only whitespace. Inner counts blank runs as paragraphs; around takes
// each paragraph with the blank lines after it, or before it when none
// follow.
func selectParagraph(around bool) SelectFunc {
	return func(b *buffer.Buffer, p buffer.Position, count int) (Range, bool) {
		last := b.LineCount() - 1
		blank := func(row int) bool { return blankLine(b.Line(row)) }
		runEnd := func(row int) int {
			kind := blank(row)
			for row < last && blank(row+1) == kind {
				row++
			}
			return row
		}

		start := p.Row
		for start > 0 && blank(start-1) == blank(p.Row) {
			start--
		}
		onBlank := blank(p.Row)

		end := start - 1
		trailing := false
		for range repeat(count) {
			if end >= last {
				break
			}
			end = runEnd(end + 1)
			if !around {
				continue
			}
			if blank(end) {
				if end < last {
					end = runEnd(end + 1)
				}
				continue
			}
			trailing = end < last
			if trailing {
				end = runEnd(end + 1)
			}
		}
		if around && !onBlank && !trailing {
			for start > 0 && blank(start-1) {
				start--
			}
		}
		return Range{
			Start:    buffer.Position{Row: start},
			End:      buffer.Position{Row: end, Col: b.LineLen(end)},
			Linewise: true,
		}, true
	}
}

// selectPair builds the bracket objects. The pair may span lines and the
// cursor may sit on either bracket. When the open bracket ends its line and
// the close bracket starts its own, the inner object is the lines between.
func selectPair(open, close rune, around bool) SelectFunc {
	return func(b *buffer.Buffer, p buffer.Position, count int) (Range, bool) {
		o, c, ok := enclosingPair(b, p, open, close, repeat(count))
		if !ok {
			return Range{}, false
		}
		if around {
			return Range{Start: o, End: buffer.Position{Row: c.Row, Col: c.Col + 1}}, true
		}
		closeLine := []rune(b.Line(c.Row))
		if o.Col+1 >= b.LineLen(o.Row) && c.Row > o.Row+1 && blankLine(string(closeLine[:c.Col])) {
			return Range{
				Start:    buffer.Position{Row: o.Row + 1},
				End:      buffer.Position{Row: c.Row - 1, Col: b.LineLen(c.Row - 1)},
				Linewise: true,
			}, true
		}
		return Range{Start: buffer.Position{Row: o.Row, Col: o.Col + 1}, End: c}, true
	}
}

// enclosingPair finds the level-th bracket pair around p.
func enclosingPair(b *buffer.Buffer, p buffer.Position, open, close rune, level int) (o, c buffer.Position, ok bool) {
	from := p
	if runeAt(b, p) == close {
		if from, ok = stepBack(b, p); !ok {
			return o, c, false
		}
	}
	for i := range level {
		if i > 0 {
			if from, ok = stepBack(b, o); !ok {
				return o, c, false
			}
		}
		if o, ok = scanUnmatched(b, from, open, close, false); !ok {
			return o, c, false
		}
	}
	after, ok := stepForward(b, o)
	if !ok {
		return o, c, false
	}
	c, ok = scanUnmatched(b, after, open, close, true)
	return o, c, ok
}

// scanUnmatched walks from p (inclusive) looking for the open bracket, or
// with forward set the close bracket, that is not balanced on the way.
func scanUnmatched(b *buffer.Buffer, p buffer.Position, open, close rune, forward bool) (buffer.Position, bool) {
	want, nest := open, close
	step := stepBack
	if forward {
		want, nest = close, open
		step = stepForward
	}
	depth := 0
	for {
		switch runeAt(b, p) {
		case nest:
			depth++
		case want:
			if depth == 0 {
				return p, true
			}
			depth--
		}
		var ok bool
		if p, ok = step(b, p); !ok {
			return p, false
		}
	}
}

// runeAt returns the character at p, or '\n' on the end-of-line caret.
func runeAt(b *buffer.Buffer, p buffer.Position) rune {
	line := []rune(b.Line(p.Row))
	if p.Col >= len(line) {
		return '\n'
	}
	return line[p.Col]
}

func stepForward(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	if p.Col < b.LineLen(p.Row) {
		return buffer.Position{Row: p.Row, Col: p.Col + 1}, true
	}
	if p.Row+1 >= b.LineCount() {
		return p, false
	}
	return buffer.Position{Row: p.Row + 1}, true
}

func stepBack(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	if p.Col > 0 {
		return buffer.Position{Row: p.Row, Col: p.Col - 1}, true
	}
	if p.Row == 0 {
		return p, false
	}
	return buffer.Position{Row: p.Row - 1, Col: b.LineLen(p.Row - 1)}, true
}

// selectQuote builds the quote objects on the cursor line. Quotes pair up
// from the start of the line, a backslash escapes a quote, and a cursor
// before the first pair selects that pair. Around adds trailing
// whitespace, or leading whitespace when none trails.
func selectQuote(quote rune, around bool) SelectFunc {
	return func(b *buffer.Buffer, p buffer.Position, _ int) (Range, bool) {
		line := []rune(b.Line(p.Row))
		var quotes []int
		for i, r := range line {
			if r == quote && (i == 0 || line[i-1] != '\\') {
				quotes = append(quotes, i)
			}
		}
		for i := 0; i+1 < len(quotes); i += 2 {
			s, e := quotes[i], quotes[i+1]
			if p.Col > e {
				continue
			}
			if !around {
				return Range{
					Start: buffer.Position{Row: p.Row, Col: s + 1},
					End:   buffer.Position{Row: p.Row, Col: e},
				}, true
			}
			end := e + 1
			for end < len(line) && buffer.ClassOf(line[end]) == buffer.ClassSpace {
				end++
			}
			if end == e+1 {
				for s > 0 && buffer.ClassOf(line[s-1]) == buffer.ClassSpace {
					s--
				}
			}
			return Range{
				Start: buffer.Position{Row: p.Row, Col: s},
				End:   buffer.Position{Row: p.Row, Col: end},
			}, true
		}
		return Range{}, false
	}
}
