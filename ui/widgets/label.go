package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/style"
	"github.com/drake/arbor/widget"
)

var plain = style.Plain()

func stylesOf(dc *widget.DrawCx) *style.Styles {
	if dc == nil || dc.Styles == nil {
		return &plain
	}
	return dc.Styles
}

// accessText is label text with an optional access key. In the source
// string "&x" marks x as the key and "&&" is a literal ampersand.
type accessText struct {
	text   string
	key    rune
	keyPos int // Byte offset of the key in text; -1 if none
}

func parseAccess(s string) accessText {
	at := accessText{keyPos: -1}
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n
		if r != '&' || i >= len(s) {
			sb.WriteRune(r)
			continue
		}
		next, m := utf8.DecodeRuneInString(s[i:])
		i += m
		if next != '&' && at.keyPos < 0 {
			at.key = next
			at.keyPos = sb.Len()
		}
		sb.WriteRune(next)
	}
	at.text = sb.String()
	return at
}

// render styles the text with base, underlining the access key.
func (at accessText) render(styles *style.Styles, base lipgloss.Style) string {
	if at.keyPos < 0 {
		return base.Render(at.text)
	}
	n := utf8.RuneLen(at.key)
	return base.Render(at.text[:at.keyPos]) +
		styles.AccessKey.Inherit(base).Render(at.text[at.keyPos:at.keyPos+n]) +
		base.Render(at.text[at.keyPos+n:])
}

// Label shows static text. An access key marked with & is underlined but
// not bound; use a Button to make it do something.
type Label struct {
	widget.Base
	at accessText
}

// NewLabel returns a label showing text.
func NewLabel(text string) *Label {
	return &Label{at: parseAccess(text)}
}

// SetText replaces the text. The caller must request a redraw.
func (l *Label) SetText(text string) { l.at = parseAccess(text) }

// Text returns the text without access key markers.
func (l *Label) Text() string { return l.at.text }

// AccessKey returns the marked key, or 0.
func (l *Label) AccessKey() rune { return l.at.key }

func (l *Label) SizeHint() event.Size { return textSize(l.at.text) }

func (l *Label) View(dc *widget.DrawCx) string {
	styles := stylesOf(dc)
	if strings.Contains(l.at.text, "\n") {
		return fit(styles.Label.Render(l.at.text), l.Rect())
	}
	return fit(l.at.render(styles, styles.Label), l.Rect())
}

// Text shows a string derived from update data of type D. Data of any
// other type is ignored.
type Text[D any] struct {
	widget.Base
	format   func(D) string
	text     string
	minWidth int
}

// NewText returns a Text that formats its data with format.
func NewText[D any](format func(D) string) *Text[D] {
	return &Text[D]{format: format}
}

// WithMinWidth reserves width so that the layout does not shift as the
// text changes.
func (t *Text[D]) WithMinWidth(w int) *Text[D] {
	t.minWidth = w
	return t
}

// Text returns the current text.
func (t *Text[D]) Text() string { return t.text }

func (t *Text[D]) Update(data any) {
	if d, ok := data.(D); ok {
		t.text = t.format(d)
	}
}

func (t *Text[D]) SizeHint() event.Size {
	s := textSize(t.text)
	s.W = max(s.W, t.minWidth)
	return s
}

func (t *Text[D]) View(dc *widget.DrawCx) string {
	return fit(stylesOf(dc).Label.Render(t.text), t.Rect())
}
