package locale

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/nakshatra-api/internal/astro"
)

func TestDefault_Locales(t *testing.T) {
	assert.Equal(t, []string{"en", "ta", "hi"}, Default.Locales())
}

func TestResolveName_AllIndices(t *testing.T) {
	for _, id := range Default.Locales() {
		for i := 0; i < astro.ZodiacSigns; i++ {
			name, err := ResolveName(KindSign, i, id)
			require.NoError(t, err, "%s sign %d", id, i)
			assert.NotEmpty(t, name)
		}
		for i := 0; i < astro.LunarMansions; i++ {
			name, err := ResolveName(KindMansion, i, id)
			require.NoError(t, err, "%s mansion %d", id, i)
			assert.NotEmpty(t, name)
		}
	}
}

func TestResolveName_KnownValues(t *testing.T) {
	tests := []struct {
		kind   Kind
		index  int
		locale string
		want   string
	}{
		{KindSign, 0, "en", "Aries"},
		{KindSign, 6, "en", "Libra"},
		{KindSign, 11, "ta", "மீனம்"},
		{KindSign, 3, "hi", "कर्क"},
		{KindMansion, 0, "en", "Ashwini"},
		{KindMansion, 15, "en", "Vishakha"},
		{KindMansion, 26, "ta", "ரேவதி"},
		{KindMansion, 7, "hi", "पुष्य"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v/%d", tt.locale, tt.kind, tt.index), func(t *testing.T) {
			got, err := ResolveName(tt.kind, tt.index, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveName_Errors(t *testing.T) {
	_, err := ResolveName(KindSign, 12, "en")
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = ResolveName(KindSign, -1, "en")
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = ResolveName(KindMansion, 27, "ta")
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = ResolveName(KindMansion, 0, "fr")
	assert.True(t, errors.Is(err, ErrUnknownLocale))

	// Locale is checked before the index.
	_, err = ResolveName(KindMansion, 99, "xx")
	assert.True(t, errors.Is(err, ErrUnknownLocale))

	_, err = ResolveName(KindLetters, 0, "en")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestResolveStartingLetters(t *testing.T) {
	letters, err := ResolveStartingLetters(0, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chu", "Che", "Cho", "La"}, letters)

	letters, err = ResolveStartingLetters(15, "ta")
	require.NoError(t, err)
	assert.Equal(t, []string{"தி", "து", "தே", "தோ"}, letters)

	_, err = ResolveStartingLetters(27, "en")
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = ResolveStartingLetters(0, "de")
	assert.True(t, errors.Is(err, ErrUnknownLocale))
}

func TestResolveStartingLetters_ReturnsCopy(t *testing.T) {
	letters, err := ResolveStartingLetters(2, "en")
	require.NoError(t, err)
	letters[0] = "changed"

	again, err := ResolveStartingLetters(2, "en")
	require.NoError(t, err)
	assert.Equal(t, "A", again[0])
}

func TestLookup(t *testing.T) {
	e, err := Lookup(6, KindSign, "en")
	require.NoError(t, err)
	assert.Equal(t, Entry{Kind: KindSign, Name: "Libra"}, e)

	e, err = Lookup(15, KindMansion, "en")
	require.NoError(t, err)
	assert.Equal(t, "Vishakha", e.Name)
	assert.Nil(t, e.Letters)

	e, err = Lookup(15, KindLetters, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ti", "Tu", "Te", "To"}, e.Letters)
	assert.Empty(t, e.Name)

	_, err = Lookup(0, KindLetters, "zz")
	assert.True(t, errors.Is(err, ErrUnknownLocale))
}

func TestLookup_EmptyLettersIsValid(t *testing.T) {
	sparse := english
	sparse.ID = "en-x-test"
	sparse.Letters[4] = nil

	r, err := NewRegistry(&sparse)
	require.NoError(t, err)

	e, err := r.Lookup(4, KindLetters, "en-x-test")
	require.NoError(t, err)
	assert.NotNil(t, e.Letters)
	assert.Empty(t, e.Letters)
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := NewRegistry()
	assert.Error(t, err)

	dup := english
	dup.Letters[0] = []string{"Chu", "Chu"}
	_, err = NewRegistry(&dup)
	assert.ErrorContains(t, err, "repeats letter")

	unnamed := tamil
	unnamed.Signs[3] = ""
	_, err = NewRegistry(&unnamed)
	assert.ErrorContains(t, err, "sign 3 has no name")

	_, err = NewRegistry(&english, &english)
	assert.ErrorContains(t, err, "registered twice")

	assert.Panics(t, func() { MustRegistry(&unnamed) })
}

func TestTables_NoDuplicateLetters(t *testing.T) {
	for _, id := range Default.Locales() {
		table, err := Default.Table(id)
		require.NoError(t, err)
		assert.NoError(t, table.validate(), id)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"sign", KindSign, false},
		{"Signs", KindSign, false},
		{"rasi", KindSign, false},
		{"mansion", KindMansion, false},
		{"nakshatra", KindMansion, false},
		{"letters", KindLetters, false},
		{"planet", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrUnknownKind), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, "mansion", KindMansion.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		preferred []string
		want      string
		wantOK    bool
	}{
		{[]string{"ta-IN"}, "ta", true},
		{[]string{"en-GB"}, "en", true},
		{[]string{"hi"}, "hi", true},
		{[]string{"fr-FR,ta;q=0.8,en;q=0.5"}, "ta", true},
		{[]string{"ja"}, "", false},
		{[]string{""}, "", false},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := Default.Negotiate(tt.preferred...)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.preferred)
		assert.Equal(t, tt.want, got, "%v", tt.preferred)
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			id := Default.Locales()[g%3]
			for i := 0; i < 1000; i++ {
				if _, err := Lookup(i%astro.LunarMansions, KindLetters, id); err != nil {
					t.Error(err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}
