// Package locale holds the compiled-in sign, mansion and naming-letter
// tables and resolves sidereal indices to display strings.
//
// Tables are built once at package initialisation and never modified, so a
// Registry is safe for concurrent use without locking.
package locale

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/zapponejosh/nakshatra-api/internal/astro"
)

// Lookup errors. Wrapped errors carry the locale or index; test with errors.Is.
var (
	ErrUnknownLocale = errors.New("unknown locale")
	ErrOutOfRange    = errors.New("index out of range")
	ErrUnknownKind   = errors.New("unknown lookup kind")
)

// Kind selects which sequence of a Table a lookup reads.
type Kind int

const (
	KindSign Kind = iota
	KindMansion
	KindLetters
)

var kindNames = [...]string{
	KindSign:    "sign",
	KindMansion: "mansion",
	KindLetters: "letters",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts "sign", "mansion" or "letters" (plural forms and
// "nakshatra"/"rasi" aliases too).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sign", "signs", "rasi", "zodiac":
		return KindSign, nil
	case "mansion", "mansions", "nakshatra":
		return KindMansion, nil
	case "letters", "letter":
		return KindLetters, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Table is the display data for one locale. Sequences are indexed by the
// astro package's zodiac and mansion indices.
type Table struct {
	ID       string // BCP 47 base language, e.g. "ta"
	Name     string // name of the language in itself
	Signs    [astro.ZodiacSigns]string
	Mansions [astro.LunarMansions]string
	// Letters lists, per mansion, the syllables a name traditionally starts
	// with. Order is display order; an empty entry is allowed.
	Letters [astro.LunarMansions][]string
}

// Entry is the result of a Lookup: Name for signs and mansions, Letters for
// letter lookups.
type Entry struct {
	Kind    Kind     `json:"-"`
	Name    string   `json:"name,omitempty"`
	Letters []string `json:"letters,omitempty"`
}

// Registry is an immutable set of locale tables.
type Registry struct {
	tables  []*Table
	matcher language.Matcher
}

// NewRegistry validates tables and returns a registry over them. The first
// table is the fallback for negotiation.
func NewRegistry(tables ...*Table) (*Registry, error) {
	if len(tables) == 0 {
		return nil, errors.New("no locale tables")
	}

	var errs []error
	tags := make([]language.Tag, 0, len(tables))
	seen := make(map[string]bool, len(tables))
	for _, t := range tables {
		if err := t.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("locale %q registered twice", t.ID))
			continue
		}
		seen[t.ID] = true

		tag, err := language.Parse(t.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("locale %q: %w", t.ID, err))
			continue
		}
		tags = append(tags, tag)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Registry{
		tables:  slices.Clone(tables),
		matcher: language.NewMatcher(tags),
	}, nil
}

// MustRegistry is like NewRegistry but panics on invalid tables.
func MustRegistry(tables ...*Table) *Registry {
	r, err := NewRegistry(tables...)
	if err != nil {
		panic("locale: " + err.Error())
	}
	return r
}

func (t *Table) validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("table without ID"))
	}
	for i, s := range t.Signs {
		if s == "" {
			errs = append(errs, fmt.Errorf("locale %q: sign %d has no name", t.ID, i))
		}
	}
	for i, s := range t.Mansions {
		if s == "" {
			errs = append(errs, fmt.Errorf("locale %q: mansion %d has no name", t.ID, i))
		}
	}
	for i, letters := range t.Letters {
		seen := make(map[string]bool, len(letters))
		for _, l := range letters {
			if l == "" {
				errs = append(errs, fmt.Errorf("locale %q: mansion %d has an empty letter", t.ID, i))
			}
			if seen[l] {
				errs = append(errs, fmt.Errorf("locale %q: mansion %d repeats letter %q", t.ID, i, l))
			}
			seen[l] = true
		}
	}
	return errors.Join(errs...)
}

// Locales returns the registered locale IDs in registration order.
func (r *Registry) Locales() []string {
	ids := make([]string, len(r.tables))
	for i, t := range r.tables {
		ids[i] = t.ID
	}
	return ids
}

// Table returns the table for an exact locale ID.
func (r *Registry) Table(id string) (*Table, error) {
	// A handful of tables: a scan beats hashing.
	for _, t := range r.tables {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, id)
}

// ResolveName returns the sign or mansion name at index in locale.
func (r *Registry) ResolveName(kind Kind, index int, locale string) (string, error) {
	t, err := r.Table(locale)
	if err != nil {
		return "", err
	}

	switch kind {
	case KindSign:
		if index < 0 || index >= len(t.Signs) {
			return "", fmt.Errorf("%w: sign %d", ErrOutOfRange, index)
		}
		return t.Signs[index], nil
	case KindMansion:
		if index < 0 || index >= len(t.Mansions) {
			return "", fmt.Errorf("%w: mansion %d", ErrOutOfRange, index)
		}
		return t.Mansions[index], nil
	}
	return "", fmt.Errorf("%w: %v has no name", ErrUnknownKind, kind)
}

// ResolveStartingLetters returns the naming letters for a mansion in
// locale. The slice is a copy; an empty result is valid.
func (r *Registry) ResolveStartingLetters(mansionIndex int, locale string) ([]string, error) {
	t, err := r.Table(locale)
	if err != nil {
		return nil, err
	}
	if mansionIndex < 0 || mansionIndex >= len(t.Letters) {
		return nil, fmt.Errorf("%w: mansion %d", ErrOutOfRange, mansionIndex)
	}
	return slices.Clone(t.Letters[mansionIndex]), nil
}

// Lookup resolves index for any kind. Letters lookups fill Entry.Letters,
// the others Entry.Name.
func (r *Registry) Lookup(index int, kind Kind, locale string) (Entry, error) {
	if kind == KindLetters {
		letters, err := r.ResolveStartingLetters(index, locale)
		if err != nil {
			return Entry{}, err
		}
		if letters == nil {
			letters = []string{}
		}
		return Entry{Kind: kind, Letters: letters}, nil
	}

	name, err := r.ResolveName(kind, index, locale)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Kind: kind, Name: name}, nil
}

// Negotiate picks the registered locale that best serves the preferred
// language tags, e.g. "ta-IN" or an Accept-Language header value. ok is
// false when nothing registered is a reasonable match.
func (r *Registry) Negotiate(preferred ...string) (id string, ok bool) {
	var tags []language.Tag
	for _, p := range preferred {
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return "", false
	}

	_, index, confidence := r.matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return r.tables[index].ID, true
}

// Default is the registry of the compiled-in tables.
var Default = MustRegistry(&english, &tamil, &hindi)

// ResolveName resolves against Default.
func ResolveName(kind Kind, index int, locale string) (string, error) {
	return Default.ResolveName(kind, index, locale)
}

// ResolveStartingLetters resolves against Default.
func ResolveStartingLetters(mansionIndex int, locale string) ([]string, error) {
	return Default.ResolveStartingLetters(mansionIndex, locale)
}

// Lookup resolves against Default.
func Lookup(index int, kind Kind, locale string) (Entry, error) {
	return Default.Lookup(index, kind, locale)
}
