package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  Ivan Petrov  \nnext\n"))

	got, err := GetSimpleText(r, "Enter full name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", got)
	assert.Equal(t, "Enter full name\n> ", out.String())

	got, err = GetSimpleText(r, "again", &out)
	require.NoError(t, err)
	assert.Equal(t, "next", got)
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("tail"))
	got, err := GetSimpleText(r, "p", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = GetSimpleText(r, "p", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) { return []byte("pass123"), nil }

	var out bytes.Buffer
	got, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "pass123", got)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetPassword("Enter password", io.Discard)
	require.Error(t, err)
}
