package syntax

import "testing"

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{_EOF, "EOF"},
		{_Name, "NAME"},
		{_Literal, "LITERAL"},
		{_Or, "or"},
		{_And, "and"},
		{_Not, "not"},
		{_Neq, "<>"},
		{_Leq, "<="},
		{_Assign, "="},
		{_Eql, "=="},
		{_Lbrace, "{"},
		{_Elif, "elif"},
		{_Type, "TYPE"},
		{tokenCount + 3, "token(44)"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("Token(%d).String() = %q, want %q", tt.tok, got, tt.want)
		}
	}
}

func TestTokenNamesComplete(t *testing.T) {
	for tok := Token(0); tok < tokenCount; tok++ {
		if tokenNames[tok] == "" {
			t.Errorf("token %d has no name", tok)
		}
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		tok  Token
		want int
	}{
		{_Or, 1},
		{_And, 2},
		{_Eql, 6},
		{_Neq, 6},
		{_Lss, 7},
		{_Geq, 7},
		{_Add, 10},
		{_Sub, 10},
		{_Mul, 11},
		{_Rem, 11},
		{_Not, 0},
		{_Assign, 0},
		{_Lparen, 0},
		{_Name, 0},
	}
	for _, tt := range tests {
		if got := tt.tok.Precedence(); got != tt.want {
			t.Errorf("%v.Precedence() = %d, want %d", tt.tok, got, tt.want)
		}
	}
}

func TestTokenClasses(t *testing.T) {
	if !_If.IsKeyword() || !_Type.IsKeyword() || _Name.IsKeyword() || _Not.IsKeyword() {
		t.Error("IsKeyword misclassifies")
	}
	if !_Add.IsOperator() || !_Not.IsOperator() || _Lparen.IsOperator() || _If.IsOperator() {
		t.Error("IsOperator misclassifies")
	}
	if !_Literal.IsLiteral() || _Name.IsLiteral() {
		t.Error("IsLiteral misclassifies")
	}
	if !_EOF.IsEOF() || _Error.IsEOF() {
		t.Error("IsEOF misclassifies")
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  Token
	}{
		{"if", _If},
		{"elif", _Elif},
		{"else", _Else},
		{"for", _For},
		{"in", _In},
		{"return", _Return},
		{"break", _Break},
		{"continue", _Continue},
		{"print", _Print},
		{"true", _True},
		{"false", _False},
		{"null", _Null},
		{"and", _And},
		{"AND", _And},
		{"or", _Or},
		{"OR", _Or},
		{"not", _Not},
		{"NOT", _Not},
		{"integer", _Type},
		{"Integer", _Type},
		{"date", _Type},

		{"If", _Name},
		{"TRUE", _Name},
		{"Or", _Name},
		{"INTEGER", _Name},
		{"ifx", _Name},
		{"x", _Name},
	}
	for _, tt := range tests {
		if got := LookupKeyword(tt.ident); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestLookupType(t *testing.T) {
	for ident, want := range map[string]TypeKind{
		"boolean": BooleanType,
		"Boolean": BooleanType,
		"date":    DateType,
		"float":   FloatType,
		"Float":   FloatType,
		"integer": IntegerType,
		"string":  StringType,
		"String":  StringType,
	} {
		got, ok := LookupType(ident)
		if !ok || got != want {
			t.Errorf("LookupType(%q) = %v, %v; want %v", ident, got, ok, want)
		}
	}
	if _, ok := LookupType("int"); ok {
		t.Error(`LookupType("int") succeeded`)
	}
}

func TestKindStrings(t *testing.T) {
	if got := StringLit.String(); got != "string" {
		t.Errorf("StringLit = %q", got)
	}
	if got := BoolLit.String(); got != "boolean" {
		t.Errorf("BoolLit = %q", got)
	}
	if got := DateType.String(); got != "date" {
		t.Errorf("DateType = %q", got)
	}
	if got := InvalidSubscriptIndex.String(); got != "invalid subscript index" {
		t.Errorf("InvalidSubscriptIndex = %q", got)
	}
	if got := ErrorKind(0).String(); got != "ErrorKind(0)" {
		t.Errorf("ErrorKind(0) = %q", got)
	}
}
