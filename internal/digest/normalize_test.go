package digest

import (
	"net/url"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CaseAndWidth(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"ascii case", "音MAD", "音mad"},
		{"fullwidth latin", "ＶＯＣＡＬＯＩＤ", "vocaloid"},
		{"fullwidth digits", "ＭＡＤ２０２０", "mad2020"},
		{"halfwidth katakana", "ｵﾄﾏﾄﾞ", "オトマド"},
		{"mixed", "Ｍａｄ", "MAD"},
		{"cherokee", "Ꭰ", "ꭰ"},
		{"cherokee word", "ᏣᎳᎩ", "ꮳꮃꭹ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Normalize(tt.a), Normalize(tt.b))
		})
	}
}

func TestNormalize_DistinctTags(t *testing.T) {
	assert.NotEqual(t, Normalize("音MAD"), Normalize("MAD"))
	assert.NotEqual(t, Normalize("オトマド"), Normalize("おとまど"))
}

func TestNormalize_Encoded(t *testing.T) {
	key := Normalize(`a"b <c>`)
	assert.NotContains(t, key, `"`)
	assert.NotContains(t, key, "<")
	assert.NotContains(t, key, " ")

	assert.Equal(t, "%E9%9F%B3mad", Normalize("音MAD"))
}

func TestFold_Idempotent(t *testing.T) {
	inputs := []string{
		"音MAD",
		"ＶＯＣＡＬＯＩＤ",
		"ｵﾄﾏﾄﾞ",
		"Straße",
		"ΣΊΣΥΦΟΣ",
		"",
		"手描き",
		"ᏣᎳᎩ",
		"ꮳꮃꭹ",
	}

	for _, in := range inputs {
		once := Fold(in)
		assert.Equal(t, once, Fold(once), "Fold(%q)", in)
	}
}

func TestFold_IdempotentEveryRune(t *testing.T) {
	if testing.Short() {
		t.Skip("sweeps every code point")
	}

	var failed []rune
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		once := Fold(string(r))
		if Fold(once) != once {
			failed = append(failed, r)
		}
	}
	assert.Empty(t, failed, "Fold is not idempotent for %d runes", len(failed))
}

func TestFold_InvalidUTF8(t *testing.T) {
	assert.Equal(t, "mad", Fold("Ｍ\xffＡＤ"))
	assert.Equal(t, Normalize("音MAD"), Normalize("音\xfeMAD"))
}

func TestNormalize_IdempotentOnDecodedKey(t *testing.T) {
	inputs := []string{"音MAD", "ＶＯＣＡＬＯＩＤ", "a&b=c", "100%"}

	for _, in := range inputs {
		key := Normalize(in)
		decoded, err := url.QueryUnescape(key)
		require.NoError(t, err)
		assert.Equal(t, key, Normalize(decoded), "Normalize(%q)", in)
	}
}

func TestNormalizeAll(t *testing.T) {
	keys := NormalizeAll([]string{"A", "b"})
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Empty(t, NormalizeAll(nil))
}
