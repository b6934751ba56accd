package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lsic/pkg/utils"
)

// run executes the command tree in a scratch directory holding files.
func run(t *testing.T, files map[string]string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	chdir(t, dir)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestTokensCommand(t *testing.T) {
	stdout, stderr, err := run(t, map[string]string{"a.lsi": "int x;"}, "tokens", "a.lsi")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tokens (3)")
	assert.Contains(t, stdout, `"x"`)
	assert.Empty(t, stderr)
}

func TestTokensCommandReportsLexicalErrors(t *testing.T) {
	stdout, stderr, err := run(t, map[string]string{"a.lsi": "int x;\nx = 1 + * 2;"}, "tokens", "a.lsi")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout, "Tokens (")
	assert.Contains(t, stderr, `lexical error: line 2, column 8: adjacent operators "+*"`)
	assert.Contains(t, stderr, "  |> x = 1 + * 2;")
	assert.Contains(t, stderr, "1 lexical error(s)\n")
}

func TestCheckCommandFoldsLexicalErrors(t *testing.T) {
	src := "int x;\nx = 1 + * 2;\nprint x @ 3;\n"
	_, stderr, err := run(t, map[string]string{"c.lsi": src}, "check", "c.lsi")
	assert.ErrorIs(t, err, errReported)

	adjacent := strings.Index(stderr, `line 2, column 8: adjacent operators "+*"`)
	unknown := strings.Index(stderr, `line 3, column 8: unrecognized character "@"`)
	summary := strings.Index(stderr, "2 lexical error(s)\n")
	require.GreaterOrEqual(t, adjacent, 0)
	assert.Greater(t, unknown, adjacent)
	assert.Greater(t, summary, unknown)
}

func TestCheckCommandHugeLiteral(t *testing.T) {
	src := "int x = 1 + 99999999999999999999 + 2;"
	_, stderr, err := run(t, map[string]string{"c.lsi": src}, "check", "c.lsi")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, `integer out of range "99999999999999999999"`)
	assert.NotContains(t, stderr, "adjacent operators")
	assert.NotContains(t, stderr, "syntax error")
}

func TestTokensCommandAllowAdjacentFlag(t *testing.T) {
	_, stderr, err := run(t, map[string]string{"a.lsi": "int x = 1 + * 2;"},
		"tokens", "--allow-adjacent-operators", "a.lsi")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestTokensCommandJSON(t *testing.T) {
	stdout, _, err := run(t, map[string]string{"a.lsi": "print 42;"}, "tokens", "--format", "json", "a.lsi")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "PRINT", got[0]["kind"])
	assert.Equal(t, "NUM", got[1]["kind"])
	assert.EqualValues(t, 42, got[1]["value"])
}

func TestParseCommand(t *testing.T) {
	src := "def f(int a) { print a; return; }\ndef main() { int r; r = f(a); }\n"
	stdout, stderr, err := run(t, map[string]string{"p.lsi": src}, "parse", "p.lsi")
	require.NoError(t, err)
	assert.Contains(t, stdout, "parse OK")
	assert.Empty(t, stderr)
}

func TestParseCommandSymbols(t *testing.T) {
	stdout, _, err := run(t, map[string]string{"p.lsi": "int x; x = 1;"}, "parse", "--symbols", "p.lsi")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Functions: (empty)")
	assert.Contains(t, stdout, "Variables:\n  x")
}

func TestParseCommandUndeclared(t *testing.T) {
	stdout, stderr, err := run(t, map[string]string{"p.lsi": "int x; y = 1;"}, "parse", "p.lsi")
	assert.ErrorIs(t, err, errReported)
	assert.NotContains(t, stdout, "parse OK")
	assert.Contains(t, stderr, `semantic error: line 1, column 7: undeclared variable "y"`)
	assert.Contains(t, stderr, "  |         ^")
}

func TestParseCommandSyntaxError(t *testing.T) {
	_, stderr, err := run(t, map[string]string{"p.lsi": "int x = 1"}, "parse", "p.lsi")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "syntax error: line 1, column 9: expected SEMICOLON, found EOF")
}

func TestCheckCommand(t *testing.T) {
	stdout, _, err := run(t, map[string]string{"c.lsi": "def g(int n) { return; }"}, "check", "c.lsi")
	require.NoError(t, err)
	assert.Contains(t, stdout, "c.lsi: OK (10 tokens)")
	assert.Contains(t, stdout, "g                     line 1, column 4 (params: 1)")
}

func TestCheckCommandFailsOnLexicalError(t *testing.T) {
	stdout, stderr, err := run(t, map[string]string{"c.lsi": "int x; x = 1 $ 2;"}, "check", "c.lsi")
	assert.ErrorIs(t, err, errReported)
	assert.NotContains(t, stdout, "OK")
	assert.Contains(t, stderr, `unrecognized character "$"`)
}

func TestCheckCommandConfigFile(t *testing.T) {
	files := map[string]string{
		".lsic.toml": "[output]\nformat = \"yaml\"\n",
		"c.lsi":      "int x;",
	}
	stdout, _, err := run(t, files, "check", "c.lsi")
	require.NoError(t, err)
	assert.Contains(t, stdout, "variables:")
	assert.Contains(t, stdout, "name: x")
}

func TestFlagOverridesConfigFile(t *testing.T) {
	files := map[string]string{
		".lsic.toml": "[output]\nformat = \"yaml\"\n",
		"c.lsi":      "int x;",
	}
	stdout, _, err := run(t, files, "check", "--format", "json", "c.lsi")
	require.NoError(t, err)

	var dump struct {
		Variables []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"variables"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &dump))
	require.Len(t, dump.Variables, 1)
	assert.Equal(t, "x", dump.Variables[0].Name)
	assert.Equal(t, "variable", dump.Variables[0].Kind)
}

func TestExplicitConfigFile(t *testing.T) {
	files := map[string]string{
		"lsic.toml": "[lexer]\nskip_comments = true\n",
		"c.lsi":     "# header\nint x;",
	}
	_, _, err := run(t, files, "check", "--config", "lsic.toml", "c.lsi")
	require.NoError(t, err)
}

func TestInvalidConfig(t *testing.T) {
	files := map[string]string{
		".lsic.toml": "[output]\nformat = \"xml\"\n",
		"c.lsi":      "int x;",
	}
	_, _, err := run(t, files, "check", "c.lsi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestInvalidFormatFlag(t *testing.T) {
	_, _, err := run(t, map[string]string{"c.lsi": "int x;"}, "tokens", "--format", "xml", "c.lsi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestMissingSource(t *testing.T) {
	_, _, err := run(t, nil, "parse", "nope.lsi")
	assert.ErrorIs(t, err, utils.ErrSourceNotFound)
}

func TestArgsRequired(t *testing.T) {
	_, _, err := run(t, nil, "check")
	require.Error(t, err)
}

func TestVerboseRun(t *testing.T) {
	_, _, err := run(t, map[string]string{"c.lsi": "int x;"}, "-v", "parse", "c.lsi")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "lsic "+Version+"\n", stdout)
}
