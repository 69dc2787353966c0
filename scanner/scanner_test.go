package scanner_test

import (
	"testing"

	"github.com/dcrockford/pioasm/scanner"
	"github.com/dcrockford/pioasm/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	s := scanner.New("test.pio", src)
	toks, err := scanner.All(s)
	require.Nil(t, err, "unexpected scan error: %v", err)
	return toks
}

func TestScanner_Mnemonic(t *testing.T) {
	toks := scanAll(t, "nop\n")
	require.Len(t, toks, 3) // nop, newline, eof
	require.Equal(t, token.Keyword, toks[0].Kind)
	require.Equal(t, "nop", toks[0].Text)
	require.Equal(t, token.Newline, toks[1].Kind)
	require.Equal(t, token.EOF, toks[2].Kind)
}

func TestScanner_Label(t *testing.T) {
	toks := scanAll(t, "start:\n")
	require.Equal(t, token.Label, toks[0].Kind)
	require.Equal(t, "start", toks[0].Text)
}

func TestScanner_SymbolCasePreserved(t *testing.T) {
	toks := scanAll(t, ".define MyConst 3\n")
	require.Equal(t, token.Keyword, toks[0].Kind) // '.'
	require.Equal(t, token.Keyword, toks[1].Kind) // 'define'
	require.Equal(t, token.Symbol, toks[2].Kind)
	require.Equal(t, "MyConst", toks[2].Text)
}

func TestScanner_Numbers(t *testing.T) {
	toks := scanAll(t, "0x1F 0b101 42 1_000\n")
	require.Equal(t, int64(0x1F), toks[0].Value)
	require.Equal(t, int64(5), toks[1].Value)
	require.Equal(t, int64(42), toks[2].Value)
	require.Equal(t, int64(1000), toks[3].Value)
}

func TestScanner_BadNumber(t *testing.T) {
	s := scanner.New("test.pio", "0xZZ\n")
	_, err := scanner.All(s)
	require.NotNil(t, err)
}

func TestScanner_MultiCharPunctuation(t *testing.T) {
	toks := scanAll(t, "x!=y\n")
	require.Equal(t, token.Keyword, toks[0].Kind)
	require.Equal(t, "x", toks[0].Text)
	require.Equal(t, token.Keyword, toks[1].Kind)
	require.Equal(t, "!=", toks[1].Text)
	require.Equal(t, token.Keyword, toks[2].Kind)
	require.Equal(t, "y", toks[2].Text)
}

func TestScanner_BitReverseOperator(t *testing.T) {
	toks := scanAll(t, "mov y, ::x\n")
	var found bool
	for _, tk := range toks {
		if tk.Kind == token.Keyword && tk.Text == "::" {
			found = true
		}
	}
	require.True(t, found, "expected a '::' keyword token")
}

func TestScanner_LineComment(t *testing.T) {
	a := scanAll(t, "nop\n")
	b := scanAll(t, "nop // a comment\n")
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].Kind, b[i].Kind)
		require.Equal(t, a[i].Text, b[i].Text)
	}
}

func TestScanner_SemicolonComment(t *testing.T) {
	toks := scanAll(t, "nop ; trailing\n")
	require.Equal(t, token.Keyword, toks[0].Kind)
	require.Equal(t, token.Newline, toks[1].Kind)
}

func TestScanner_BlockCommentSpansLines(t *testing.T) {
	toks := scanAll(t, "nop /* spans\nmultiple\nlines */ nop\n")
	// nop, nop, newline, eof
	require.Equal(t, token.Keyword, toks[0].Kind)
	require.Equal(t, "nop", toks[0].Text)
	require.Equal(t, token.Keyword, toks[1].Kind)
	require.Equal(t, "nop", toks[1].Text)
	require.Equal(t, token.Newline, toks[2].Kind)
}

func TestScanner_UnterminatedBlockComment(t *testing.T) {
	s := scanner.New("test.pio", "nop /* never closes\n")
	_, err := scanner.All(s)
	require.NotNil(t, err)
}

func TestScanner_SingleSlashIsKeyword(t *testing.T) {
	toks := scanAll(t, "1 / 2\n")
	require.Equal(t, token.Number, toks[0].Kind)
	require.Equal(t, token.Keyword, toks[1].Kind)
	require.Equal(t, "/", toks[1].Text)
}
