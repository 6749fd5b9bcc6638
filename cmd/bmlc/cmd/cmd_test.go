package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bml-lang/bml/internal/logger"
)

// execute runs bmlc with args and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgFile, verbose, logFormat, noColor = "", false, "", false
	astFormat = ""
	fmtWrite, fmtList = false, false
	checkJobs, checkWatch = 0, false
	appCfg = nil

	prev := slog.Default()
	t.Cleanup(func() {
		logger.Close()
		slog.SetDefault(prev)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTempBMLFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func TestTokens(t *testing.T) {
	filename := writeTempBMLFile(t, "", "input.bml", "x = 'a\tb';\nif (x) {}")
	out, errOut, err := execute(t, "", "tokens", filename)
	if err != nil {
		t.Fatalf("tokens: %v\nstderr:\n%s", err, errOut)
	}

	for _, want := range []string{
		"POSITION", "TOKEN", "LITERAL",
		filename + ":1:1",
		"NAME", `"x"`,
		"string", `"a\tb"`,
		filename + ":2:1",
		"EOF",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTokensLexError(t *testing.T) {
	_, errOut, err := execute(t, "x = 1 @ 2;", "tokens", "-")
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if !strings.Contains(errOut, "<stdin>:1:7: unrecognized character:") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestAST(t *testing.T) {
	filename := writeTempBMLFile(t, "", "input.bml", "x = a + 1;")

	out, _, err := execute(t, "", "ast", filename)
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	if !strings.Contains(out, "AssignStmt") || !strings.Contains(out, "BinaryOp") {
		t.Errorf("text AST:\n%s", out)
	}

	out, _, err = execute(t, "", "ast", "--format", "json", filename)
	if err != nil {
		t.Fatalf("ast json: %v", err)
	}
	var root map[string]interface{}
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if root["type"] != "Program" {
		t.Errorf("root type = %v", root["type"])
	}

	if _, _, err := execute(t, "", "ast", "--format", "xml", filename); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestASTParseError(t *testing.T) {
	out, errOut, err := execute(t, "if (a { x; }", "ast", "-")
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty on error, got:\n%s", out)
	}
	if !strings.Contains(errOut, `expected ")", found "{"`) || !strings.Contains(errOut, "if (a { x; }") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestASTFormatFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTempBMLFile(t, dir, "bml.toml", "[output]\nast_format = \"json\"\n")
	filename := writeTempBMLFile(t, dir, "a.bml", "return;")

	out, _, err := execute(t, "", "--config", cfg, "ast", filename)
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected JSON output, got:\n%s", out)
	}
}

func TestConfigRequires(t *testing.T) {
	cfg := writeTempBMLFile(t, "", "bml.yaml", "requires: \">= 9.0.0\"\n")
	_, _, err := execute(t, "", "--config", cfg, "check", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "does not satisfy") {
		t.Errorf("err = %v, want version constraint failure", err)
	}

	// version still prints.
	out, _, err := execute(t, "", "--config", cfg, "version")
	if err != nil || !strings.Contains(out, "bmlc v"+Version) {
		t.Errorf("version: %v\n%s", err, out)
	}
}

func TestFmt(t *testing.T) {
	src := "x=1;if(a){print x;}"
	want := "x = 1;\nif (a) {\n\tprint x;\n}\n"

	out, _, err := execute(t, src, "fmt", "-")
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	dir := t.TempDir()
	messy := writeTempBMLFile(t, dir, "messy.bml", src)
	clean := writeTempBMLFile(t, dir, "clean.bml", want)

	out, _, err = execute(t, "", "fmt", "-l", messy, clean)
	if err != nil {
		t.Fatalf("fmt -l: %v", err)
	}
	if out != messy+"\n" {
		t.Errorf("fmt -l listed %q, want only %s", out, messy)
	}

	if _, _, err := execute(t, "", "fmt", "-w", messy); err != nil {
		t.Fatalf("fmt -w: %v", err)
	}
	data, err := os.ReadFile(messy)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("rewritten file = %q, want %q", data, want)
	}
}

func TestFmtWriteKeepsCommentsAndBytes(t *testing.T) {
	src := "// header\nx=\"caf\xe9\"; /* keep */\nif(a){\n// inside\nb;}\n"
	want := "// header\nx = \"caf\xe9\"; /* keep */\nif (a) {\n\t// inside\n\tb;\n}\n"
	file := writeTempBMLFile(t, "", "notes.bml", src)

	if _, _, err := execute(t, "", "fmt", "-w", file); err != nil {
		t.Fatalf("fmt -w: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("rewritten file = %q, want %q", data, want)
	}

	out, _, err := execute(t, "", "fmt", "-l", file)
	if err != nil {
		t.Fatalf("fmt -l: %v", err)
	}
	if out != "" {
		t.Errorf("fmt -l listed a formatted file: %q", out)
	}
}

func TestFmtErrors(t *testing.T) {
	if _, _, err := execute(t, "x = ;", "fmt", "-"); !errors.Is(err, ErrDiagnostics) {
		t.Errorf("err = %v, want ErrDiagnostics", err)
	}
	if _, _, err := execute(t, "x;", "fmt", "-w", "-"); err == nil || errors.Is(err, ErrDiagnostics) {
		t.Errorf("err = %v, want usage error", err)
	}
	if _, _, err := execute(t, "", "fmt", filepath.Join(t.TempDir(), "missing.bml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeTempBMLFile(t, dir, "good.bml", "x = 1;")
	writeTempBMLFile(t, dir, "bad.bml", "x = a[1+2];")
	writeTempBMLFile(t, dir, "ignored.txt", "(((")

	out, errOut, err := execute(t, "", "check", "--jobs", "2", dir)
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if !strings.Contains(out, "2 files checked, 1 with errors") {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "bad.bml:1:8: invalid subscript index:") {
		t.Errorf("stderr:\n%s", errOut)
	}

	os.Remove(filepath.Join(dir, "bad.bml"))
	out, _, err = execute(t, "", "check", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "1 file checked, 0 with errors") {
		t.Errorf("stdout = %q", out)
	}
}

func TestCheckJSONLogs(t *testing.T) {
	dir := t.TempDir()
	writeTempBMLFile(t, dir, "a.bml", "a;")

	_, errOut, err := execute(t, "", "--verbose", "--log-format", "json", "check", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var sawComplete bool
	for _, line := range strings.Split(strings.TrimSpace(errOut), "\n") {
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if rec["msg"] == "check complete" {
			sawComplete = true
		}
	}
	if !sawComplete {
		t.Errorf("no completion record in logs:\n%s", errOut)
	}
}

func TestLogFileFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeTempBMLFile(t, dir, "a.bml", "a;")
	cfg := writeTempBMLFile(t, dir, "bml.toml", "[log]\nlevel = \"info\"\nfile = \"bmlc.log\"\nadd_source = true\n")

	_, errOut, err := execute(t, "", "--config", cfg, "check", filepath.Join(dir, "a.bml"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.Contains(errOut, "check complete") {
		t.Errorf("logs went to stderr: %q", errOut)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("closing log file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bmlc.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "check complete") || !strings.Contains(string(data), "source=") {
		t.Errorf("log file = %q", data)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"bmlc v" + Version, "Grammar:", "Go Version:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\nb", `"a\nb"`},
		{"tab\there", `"tab\there"`},
		{`back\slash`, `"back\\slash"`},
		{`say "hi"`, `"say \"hi\""`},
	}
	for _, tt := range tests {
		if got := formatLiteral(tt.in); got != tt.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
