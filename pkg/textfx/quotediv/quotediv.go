// Package quotediv turns quoted passages into nested wiki wrapper blocks.
//
// Curly quotes are directional: “ always opens and ” closes when something is
// open. Straight quotes (") alternate between opening and closing. Both styles
// share one nesting counter, so a straight quote can close a block opened by a
// curly quote and the other way round. Blocks still open at the end of the
// input are closed there, so the output always has balanced tags.
package quotediv

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultOpenTag is inserted for every opening quote.
	DefaultOpenTag = `<div class="toccolours" style="overflow:auto;">`
	// DefaultCloseTag is inserted for every closing quote.
	DefaultCloseTag = `</div>`

	leftCurly  = '“'
	rightCurly = '”'
	straight   = '"'
)

// Config controls the tags emitted and whether straight quotes take part.
type Config struct {
	OpenTag  string
	CloseTag string
	Straight bool
}

// Option mutates a Config.
type Option func(*Config)

// WithTags replaces the wrapper tag pair.
func WithTags(openTag, closeTag string) Option {
	return func(c *Config) {
		c.OpenTag = openTag
		c.CloseTag = closeTag
	}
}

// WithStraightQuotes toggles handling of plain " characters. When disabled
// they are copied through like any other character.
func WithStraightQuotes(enabled bool) Option {
	return func(c *Config) {
		c.Straight = enabled
	}
}

// DefaultConfig returns the stock toccolours wrapper with straight quotes on.
func DefaultConfig() Config {
	return Config{
		OpenTag:  DefaultOpenTag,
		CloseTag: DefaultCloseTag,
		Straight: true,
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// State is the running accumulator of a scan.
type State struct {
	// Depth counts open, not yet closed wrappers. It never goes negative.
	Depth int
	// StraightOpen reports whether the next straight quote opens a wrapper.
	StraightOpen bool
}

// NewState returns the state at the start of input.
func NewState() State {
	return State{StraightOpen: true}
}

// Step consumes one rune and writes its replacement to w.
func (s *State) Step(r rune, w *strings.Builder, cfg Config) {
	switch {
	case r == straight && cfg.Straight:
		if s.StraightOpen {
			s.open(w, cfg)
		} else {
			s.closeOrLiteral(r, w, cfg)
		}
		s.StraightOpen = !s.StraightOpen
	case r == leftCurly:
		s.open(w, cfg)
	case r == rightCurly:
		s.closeOrLiteral(r, w, cfg)
	default:
		w.WriteRune(r)
	}
}

// Close writes one close tag per still-open wrapper and resets Depth.
func (s *State) Close(w *strings.Builder, cfg Config) {
	for ; s.Depth > 0; s.Depth-- {
		w.WriteString(cfg.CloseTag)
	}
}

func (s *State) open(w *strings.Builder, cfg Config) {
	w.WriteString(cfg.OpenTag)
	s.Depth++
}

func (s *State) closeOrLiteral(r rune, w *strings.Builder, cfg Config) {
	if s.Depth == 0 {
		w.WriteRune(r)
		return
	}
	w.WriteString(cfg.CloseTag)
	s.Depth--
}

// Wrap replaces quotes in text with wrapper tags in a single forward pass.
func Wrap(text string, opts ...Option) string {
	return WrapConfig(text, NewConfig(opts...))
}

// WrapConfig is Wrap with an explicit Config.
func WrapConfig(text string, cfg Config) string {
	var b strings.Builder
	b.Grow(len(text))

	st := NewState()
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid bytes pass through untouched.
			b.WriteByte(text[i])
		} else {
			st.Step(r, &b, cfg)
		}
		i += size
	}
	st.Close(&b, cfg)
	return b.String()
}

// Scan runs the state machine over text without closing open wrappers and
// returns the final accumulator.
func Scan(text string, cfg Config) State {
	var sink strings.Builder
	st := NewState()
	for _, r := range text {
		st.Step(r, &sink, cfg)
	}
	return st
}
