package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name: ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	got, err := GetSimpleText(in, "Name", io.Discard)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Name", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline_StopsAtBlankLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\nnot read\n"))
	got, err := GetMultiline(in, "Message", io.Discard)
	require.NoError(t, err)
	require.Equal(t, "a\nb", got)

	rest, _ := in.ReadString('\n')
	require.Equal(t, "not read\n", rest)
}

func TestGetPassword_PipedInput(t *testing.T) {
	old := isTerminal
	defer func() { isTerminal = old }()
	isTerminal = func(int) bool { return false }

	var out bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("s3cret\n")), &out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Equal(t, "Password: ", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	defer func() { isTerminal, readPassword = oldTerm, oldRead }()
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), io.Discard)
	require.EqualError(t, err, "boom")
}

func TestGetPassword_Terminal(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	defer func() { isTerminal, readPassword = oldTerm, oldRead }()
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("")), &out)
	require.NoError(t, err)
	require.Equal(t, []byte("hidden"), pw)
	require.Equal(t, "Password: \n", out.String())
}
