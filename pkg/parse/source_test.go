package parse

import "testing"

func TestSourcePosition(t *testing.T) {
	t.Parallel()

	src := NewSource("ab\ncd\n\nxyz")
	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
		{10, 4, 4},
		{99, 4, 4},
	}

	for _, tt := range tests {
		pos := src.Position(tt.offset)
		if pos.Line != tt.wantLine || pos.Column != tt.wantCol {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.wantLine, tt.wantCol)
		}
	}
}

func TestSourceLineStarts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []int
	}{
		{"", []int{0}},
		{"abc", []int{0, 3}},
		{"abc\n", []int{0, 4}},
		{"a\nb\nc", []int{0, 2, 4, 5}},
	}

	for _, tt := range tests {
		got := NewSource(tt.input).LineStarts()
		if len(got) != len(tt.want) {
			t.Fatalf("LineStarts(%q) = %v, want %v", tt.input, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LineStarts(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if i > 0 && got[i-1] > got[i] {
				t.Errorf("LineStarts(%q) not monotonic: %v", tt.input, got)
			}
		}
	}
}

func TestSourceLine(t *testing.T) {
	t.Parallel()

	src := NewSource("first\r\nsecond\nthird")
	for line, want := range map[int]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := src.Line(line); got != want {
			t.Errorf("Line(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestContextReverse(t *testing.T) {
	t.Parallel()

	ctx := NewContext("héllo world").Consume(len("héllo"))
	rev := ctx.Reverse()

	res := AnyWhile(IsWordChar)(rev)
	if got := res.Value(); got != "olléh" {
		t.Fatalf("reversed word = %q, want %q", got, "olléh")
	}
	if pos := res.Next().Position(); pos.Column != 1 {
		t.Errorf("reversed position maps to column %d, want 1", pos.Column)
	}
}

func TestContextConsumePanicsPastEnd(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Consume past end did not panic")
		}
	}()
	NewContext("ab").Consume(3)
}

func TestContextIsImmutable(t *testing.T) {
	t.Parallel()

	ctx := NewContext("abc")
	next := ctx.Consume(2)
	if ctx.Offset() != 0 || next.Offset() != 2 {
		t.Errorf("offsets = %d, %d; want 0, 2", ctx.Offset(), next.Offset())
	}
	if next.Char() != 'c' || next.PrevChar() != 'b' {
		t.Errorf("Char/PrevChar = %q/%q", next.Char(), next.PrevChar())
	}
	if !next.Consume(1).AtEnd() || next.Consume(1).Char() != EOFChar {
		t.Error("expected end of input")
	}
}
