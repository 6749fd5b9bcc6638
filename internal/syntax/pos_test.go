package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.bml", 10, 5, 120),
			wantStr: "test.bml:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5, 120),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.bml", 1, 1, 0),
			wantStr: "main.bml:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos("test.bml", 1, 1, 0), true},
		{"valid position line 100", NewPos("", 100, 50, 4000), true},
		{"invalid - zero line", NewPos("test.bml", 0, 1, 0), false},
		{"invalid - zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPosGetters(t *testing.T) {
	pos := NewPos("test.bml", 42, 13, 731)

	if got := pos.Line(); got != 42 {
		t.Errorf("Pos.Line() = %d, want 42", got)
	}
	if got := pos.Col(); got != 13 {
		t.Errorf("Pos.Col() = %d, want 13", got)
	}
	if got := pos.Offset(); got != 731 {
		t.Errorf("Pos.Offset() = %d, want 731", got)
	}
	if got := pos.Filename(); got != "test.bml" {
		t.Errorf("Pos.Filename() = %q, want %q", got, "test.bml")
	}
}
