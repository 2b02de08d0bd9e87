package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"": FormatText, "text": FormatText, "JSON": FormatJSON, "yml": FormatYAML,
	} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrFormat) {
		t.Errorf("error = %v, want ErrFormat", err)
	}
}

func TestWriteInstructions(t *testing.T) {
	res, err := compileString(t, "import Process\nProcess.write(\"hi\")\nProcess.wait(5)")
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	var buf bytes.Buffer
	if err := WriteInstructions(ctx, &buf, res.Instructions, FormatText, 0); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "STRING hi\r\nDELAY 5\r\n" {
		t.Errorf("text = %q", got)
	}

	buf.Reset()

	if err := WriteInstructions(ctx, &buf, res.Instructions, FormatJSON, 2); err != nil {
		t.Fatal(err)
	}

	var records []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if len(records) != 2 || records[0]["callee"] != "STRING" || records[1]["argument"] != "5" {
		t.Errorf("records = %v", records)
	}

	buf.Reset()

	if err := WriteInstructions(ctx, &buf, res.Instructions, FormatYAML, 2); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "callee: STRING") {
		t.Errorf("yaml = %q", buf.String())
	}
}

func TestWriteTree(t *testing.T) {
	src, err := ParseString(context.Background(), "const x = 1")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteTree(context.Background(), &buf, src.Unit, FormatText, 0); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"└──CompilationUnit", "VariableDeclaration", "NumberLiteralToken 1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("tree missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()

	if err := WriteTree(context.Background(), &buf, src.Unit, FormatJSON, 0); err != nil {
		t.Fatal(err)
	}

	var tree map[string]any
	if err := json.Unmarshal(buf.Bytes(), &tree); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if tree["kind"] != "CompilationUnit" {
		t.Errorf("kind = %v", tree["kind"])
	}
}

func TestWriteTokens(t *testing.T) {
	src, err := ParseString(context.Background(), "let a")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteTokens(context.Background(), &buf, src.Tokens, FormatText, 0); err != nil {
		t.Fatal(err)
	}

	want := "1:1\tLetKeyword\t\"let\"\n1:5\tIdentifierToken\t\"a\"\n"
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("tokens = %q, want prefix %q", buf.String(), want)
	}

	buf.Reset()

	if err := WriteTokens(context.Background(), &buf, src.Tokens, FormatYAML, 0); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "IdentifierToken") {
		t.Errorf("yaml = %q", buf.String())
	}
}
