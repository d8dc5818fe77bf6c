package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/agentflow/internal/apperror"
)

func TestPrinter_Markers(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	p.Success("Organization created")
	p.Warning("Save your API key now. You won't see it again!")
	p.Info("  Slug:     %s", "acme")
	p.Blank()
	p.Error("%s", "Access denied")

	assert.Equal(t,
		"√ Organization created\n"+
			"! Save your API key now. You won't see it again!\n"+
			"i   Slug:     acme\n"+
			"\n",
		out.String(), "a buffer is not a terminal, so no color codes")
	assert.Equal(t, "✗ Access denied\n", errOut.String())
}

func TestPrinter_Table(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out)

	p.Table([]string{"NAME", "SLUG"}, [][]string{
		{"Acme Corporation", "acme"},
		{"Globex", "globex"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME               SLUG", lines[0])
	assert.Equal(t, "Acme Corporation   acme", lines[1])
	assert.Equal(t, "Globex             globex", lines[2])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, strings.Repeat("a", 50), Truncate(strings.Repeat("a", 50), 50))

	got := Truncate(strings.Repeat("a", 51), 50)
	assert.Len(t, got, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateLeft(t *testing.T) {
	url := "https://github.com/some-organization/some-very-long-repository-name"

	got := TruncateLeft(url, 40)

	assert.Len(t, got, 40)
	assert.Equal(t, "..."+url[len(url)-37:], got)
	assert.Equal(t, "https://github.com/a/b", TruncateLeft("https://github.com/a/b", 40))
}

func TestCheckMark(t *testing.T) {
	assert.Equal(t, "✓", CheckMark(true))
	assert.Equal(t, "✗", CheckMark(false))
}

func TestWriteJSON_NilSlice(t *testing.T) {
	var out bytes.Buffer
	j := JSONOutput{OutputJSON: true}

	var items []string
	done, err := j.EmitJSON(&out, items)

	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "[]\n", out.String())
}

func TestEmitJSON_Disabled(t *testing.T) {
	var out bytes.Buffer
	j := JSONOutput{}

	done, err := j.EmitJSON(&out, map[string]int{"a": 1})

	require.NoError(t, err)
	assert.False(t, done)
	assert.Empty(t, out.String())
}

func TestExitError_ExitCode(t *testing.T) {
	err := error(&ExitError{Code: 3})

	assert.Equal(t, 3, apperror.ExitCode(err))
	assert.Equal(t, 3, apperror.ExitCode(errors.Join(errors.New("ctx"), err)))
}
