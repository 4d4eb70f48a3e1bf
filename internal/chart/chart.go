// Package chart resolves a moment to the Moon's sign and mansion names in one
// or more locales, along with the naming letters that go with the mansion.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/zapponejosh/nakshatra-api/internal/astro"
	"github.com/zapponejosh/nakshatra-api/internal/locale"
)

// Resolver turns sidereal indices into display strings. *locale.Registry
// satisfies it.
type Resolver interface {
	ResolveName(kind locale.Kind, index int, id string) (string, error)
	ResolveStartingLetters(mansionIndex int, id string) ([]string, error)
}

// Names is one locale's rendering of a chart.
type Names struct {
	Locale  string   `json:"locale"`
	Sign    string   `json:"sign"`
	Mansion string   `json:"mansion"`
	Letters []string `json:"letters"`
}

// Chart is the Moon's position at a moment with its names.
type Chart struct {
	Moment            astro.CivilMoment     `json:"moment"`
	Indices           astro.SiderealIndices `json:"indices"`
	TropicalLongitude float64               `json:"tropical_longitude"`
	Ayanamsa          float64               `json:"ayanamsa"`
	Names             []Names               `json:"names"`
}

// New computes the chart for m and resolves names in each of locales, in the
// order given. At least one locale is required; repeats are ignored.
func New(m astro.CivilMoment, r Resolver, locales ...string) (Chart, error) {
	if len(locales) == 0 {
		return Chart{}, errors.New("chart: no locales requested")
	}

	c := Chart{
		Moment:            m,
		Indices:           astro.ComputeSiderealIndices(m),
		TropicalLongitude: astro.TropicalLongitude(m),
		Ayanamsa:          astro.Ayanamsa(astro.JulianCenturies(m)),
	}

	seen := make(map[string]bool, len(locales))
	for _, id := range locales {
		if seen[id] {
			continue
		}
		seen[id] = true

		n, err := resolve(r, c.Indices, id)
		if err != nil {
			return Chart{}, err
		}
		c.Names = append(c.Names, n)
	}
	return c, nil
}

// Compute is New against the compiled-in locale tables.
func Compute(m astro.CivilMoment, locales ...string) (Chart, error) {
	return New(m, locale.Default, locales...)
}

func resolve(r Resolver, idx astro.SiderealIndices, id string) (Names, error) {
	sign, err := r.ResolveName(locale.KindSign, idx.ZodiacIndex, id)
	if err != nil {
		return Names{}, fmt.Errorf("chart: sign: %w", err)
	}
	mansion, err := r.ResolveName(locale.KindMansion, idx.MansionIndex, id)
	if err != nil {
		return Names{}, fmt.Errorf("chart: mansion: %w", err)
	}
	letters, err := r.ResolveStartingLetters(idx.MansionIndex, id)
	if err != nil {
		return Names{}, fmt.Errorf("chart: letters: %w", err)
	}
	if letters == nil {
		letters = []string{}
	}
	return Names{Locale: id, Sign: sign, Mansion: mansion, Letters: letters}, nil
}

// StartsWith is the union of the chart's starting letters across its
// locales, in locale order then table order, without repeats.
func (c Chart) StartsWith() []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, n := range c.Names {
		for _, l := range n.Letters {
			if seen[l] {
				continue
			}
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether name starts with one of the chart's letters.
func (c Chart) Matches(name string) bool {
	return MatchesAny(name, c.StartsWith())
}

// MatchesAny reports whether name starts with any of letters. The comparison
// ignores case and Unicode normalization form.
func MatchesAny(name string, letters []string) bool {
	name = fold(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, l := range letters {
		if l == "" {
			continue
		}
		if strings.HasPrefix(name, fold(l)) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	// A Caser is not safe for concurrent use.
	return norm.NFC.String(cases.Fold().String(s))
}
