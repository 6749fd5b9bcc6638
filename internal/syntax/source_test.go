package syntax

import "testing"

func TestSourceBasic(t *testing.T) {
	src := newSource("test", []byte("abc"))

	if src.ch != 'a' {
		t.Errorf("initial ch = %q, want 'a'", src.ch)
	}
	if src.line != 1 || src.col != 1 || src.chOff != 0 {
		t.Errorf("initial pos = %d:%d@%d, want 1:1@0", src.line, src.col, src.chOff)
	}

	src.nextch()
	if src.ch != 'b' || src.col != 2 || src.chOff != 1 {
		t.Errorf("got ch=%q col=%d off=%d, want 'b' 2 1", src.ch, src.col, src.chOff)
	}

	src.nextch()
	if src.ch != 'c' || src.col != 3 || src.chOff != 2 {
		t.Errorf("got ch=%q col=%d off=%d, want 'c' 3 2", src.ch, src.col, src.chOff)
	}

	src.nextch()
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1 (EOF)", src.ch)
	}
	if src.chOff != 3 {
		t.Errorf("EOF offset = %d, want 3", src.chOff)
	}
}

func TestSourceNewline(t *testing.T) {
	src := newSource("test", []byte("a\nb\nc"))

	want := []struct {
		ch   rune
		line uint32
		col  uint32
	}{
		{'a', 1, 1},
		{'\n', 1, 2},
		{'b', 2, 1},
		{'\n', 2, 2},
		{'c', 3, 1},
	}
	for i, w := range want {
		if i > 0 {
			src.nextch()
		}
		if src.ch != w.ch || src.line != w.line || src.col != w.col {
			t.Errorf("step %d: got ch=%q pos=%d:%d, want ch=%q pos=%d:%d",
				i, src.ch, src.line, src.col, w.ch, w.line, w.col)
		}
	}
}

func TestSourceUTF8(t *testing.T) {
	src := newSource("test", []byte("a中b"))

	src.nextch()
	if src.ch != '中' {
		t.Fatalf("ch = %q, want '中'", src.ch)
	}
	if src.chOff != 1 {
		t.Errorf("offset = %d, want 1", src.chOff)
	}

	src.nextch()
	if src.ch != 'b' {
		t.Fatalf("ch = %q, want 'b'", src.ch)
	}
	if src.col != 3 {
		t.Errorf("col = %d, want 3", src.col)
	}
	if src.chOff != 4 {
		t.Errorf("offset = %d, want 4", src.chOff)
	}
}

func TestSourcePeek(t *testing.T) {
	src := newSource("test", []byte("xy"))
	if got := src.peek(); got != 'y' {
		t.Errorf("peek() = %q, want 'y'", got)
	}
	src.nextch()
	if got := src.peek(); got != -1 {
		t.Errorf("peek() at last char = %d, want -1", got)
	}
}

func TestSourceEmpty(t *testing.T) {
	src := newSource("test", nil)
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1", src.ch)
	}
	if p := src.pos(); p.Line() != 1 || p.Col() != 1 || p.Offset() != 0 {
		t.Errorf("pos = %v@%d, want 1:1@0", p, p.Offset())
	}
}
