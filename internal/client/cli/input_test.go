package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	out := &bytes.Buffer{}
	r := bufio.NewReader(strings.NewReader("  alice@example.com  \n"))

	got, err := GetSimpleText(r, out, "Email")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)
	assert.Equal(t, "Email: ", out.String())
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	out := &bytes.Buffer{}
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(r, out, "Email")

	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	out := &bytes.Buffer{}
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, out, "Email")

	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	stubPasswords(t, "hunter2hunter2")
	out := &bytes.Buffer{}

	got, err := GetPassword(out, "Password")

	require.NoError(t, err)
	assert.Equal(t, "hunter2hunter2", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_ReadError(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("not a terminal")
	}
	out := &bytes.Buffer{}

	_, err := GetPassword(out, "Password")

	assert.Error(t, err)
}
