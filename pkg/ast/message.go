package ast

import (
	"fmt"
	"strings"
)

// MessageLevel is the severity of a runtime message.
type MessageLevel int

// Message levels, in increasing severity.
const (
	LevelDebug MessageLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

// String returns the lowercase name of the level.
func (l MessageLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseMessageLevel converts a level name to a MessageLevel.
func ParseMessageLevel(name string) (MessageLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelDebug, fmt.Errorf("unknown message level %q", name)
	}
}

// RuntimeMessage is a diagnostic embedded in the document tree.
type RuntimeMessage struct {
	Level   MessageLevel
	Content string
}

// NewMessage returns a message with a formatted content.
func NewMessage(level MessageLevel, format string, args ...any) RuntimeMessage {
	return RuntimeMessage{Level: level, Content: fmt.Sprintf(format, args...)}
}

func (m RuntimeMessage) String() string {
	return m.Level.String() + ": " + m.Content
}

// Source is a fragment of the original markup with its position.
type Source struct {
	Text   string
	Line   int
	Column int
}

// HasPosition reports whether the source carries a line and column.
func (s Source) HasPosition() bool {
	return s.Line > 0 && s.Column > 0
}

// Invalid is a diagnostic node that replaced an unresolved or ambiguous
// construct.
type Invalid interface {
	Element
	Diagnostic() RuntimeMessage
	Origin() Source
}

// InvalidBlock replaces a block that could not be parsed or resolved.
type InvalidBlock struct {
	Message  RuntimeMessage
	Source   Source
	Fallback Block
	Options
}

// InvalidSpan replaces a span that could not be parsed or resolved.
type InvalidSpan struct {
	Message  RuntimeMessage
	Source   Source
	Fallback Span
	Options
}

// NewInvalidBlock returns an InvalidBlock rendering the source text as a
// paragraph when no fallback is given.
func NewInvalidBlock(msg RuntimeMessage, src Source, fallback Block) InvalidBlock {
	if fallback == nil {
		fallback = Paragraph{Content: []Span{Text{Content: src.Text}}}
	}
	return InvalidBlock{Message: msg, Source: src, Fallback: fallback}
}

// NewInvalidSpan returns an InvalidSpan rendering the source text as plain
// text.
func NewInvalidSpan(msg RuntimeMessage, src Source) InvalidSpan {
	return InvalidSpan{Message: msg, Source: src, Fallback: Text{Content: src.Text}}
}

func (InvalidBlock) element() {}
func (InvalidSpan) element()  {}
func (InvalidBlock) block()   {}
func (InvalidSpan) span()     {}

func (b InvalidBlock) withOptions(o Options) Block { b.Options = o; return b }
func (s InvalidSpan) withOptions(o Options) Span   { s.Options = o; return s }

func (b InvalidBlock) Diagnostic() RuntimeMessage { return b.Message }
func (s InvalidSpan) Diagnostic() RuntimeMessage  { return s.Message }
func (b InvalidBlock) Origin() Source             { return b.Source }
func (s InvalidSpan) Origin() Source              { return s.Source }
