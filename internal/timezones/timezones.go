package timezones

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"
)

// Timezone is one selectable entry of the catalog.
type Timezone struct {
	ID      string
	Label   string
	Offset  int      // seconds east of UTC at build time
	Aliases []string // other identifiers with the same rules

	key string
}

// Catalog is an ordered list of timezones, unique by rule set.
type Catalog []Timezone

// Rule sets are compared over this window.
var (
	fingerprintFrom = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	fingerprintTo   = time.Date(2040, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const maxPeriods = 1024

// fingerprint lists every offset change of loc inside the comparison
// window. Locations that share a fingerprint follow the same rules.
// Abbreviations are left out, so UTC and Etc/GMT compare equal.
func fingerprint(loc *time.Location) string {
	var b strings.Builder
	t := fingerprintFrom.In(loc)
	last := -1 << 31
	for range maxPeriods {
		if _, offset := t.Zone(); offset != last {
			fmt.Fprintf(&b, "%d %d;", t.Unix(), offset)
			last = offset
		}

		_, end := t.ZoneBounds()
		if end.IsZero() || !end.Before(fingerprintTo) {
			break
		}
		t = end
	}
	return b.String()
}

func label(id string, offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("(GMT%c%02d:%02d) %s", sign, offset/3600, offset%3600/60, strings.ReplaceAll(id, "_", " "))
}

// Legacy spellings kept by the tz database for compatibility.
var (
	legacyPrefixes = []string{"Brazil/", "Canada/", "Chile/", "Mexico/", "SystemV/", "US/"}
	legacyEtc      = []string{"Etc/GMT+0", "Etc/GMT-0", "Etc/GMT0", "Etc/Greenwich", "Etc/UCT", "Etc/Universal", "Etc/Zulu"}
)

// rank orders the candidates for representing a rule set: identifiers
// listed as canonical, then regional names, then legacy spellings.
func rank(id string, canonical map[string]bool) int {
	switch {
	case canonical[id]:
		return 0
	case !strings.Contains(id, "/"), slices.Contains(legacyEtc, id):
		return 2
	}
	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(id, prefix) {
			return 2
		}
	}
	return 1
}

// Build resolves ids, collapses identifiers that share a rule set and
// sorts the result by offset at the given instant, then by ID.
// Of several aliases the best ranked one is kept, ties going to the
// lexicographically first; the others are listed as its Aliases.
func Build(ids []string, at time.Time, canonical ...string) Catalog {
	preferred := make(map[string]bool, len(canonical))
	for _, id := range canonical {
		preferred[id] = true
	}

	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b string) int {
		if ra, rb := rank(a, preferred), rank(b, preferred); ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	sorted = slices.Compact(sorted)

	index := make(map[string]int, len(sorted))
	catalog := make(Catalog, 0, len(sorted))
	for _, id := range sorted {
		if id == "" || id == "Local" {
			continue
		}
		loc, err := time.LoadLocation(id)
		if err != nil {
			log.Debug().Str("timezone", id).Err(err).Msg("Skipping unresolvable timezone")
			continue
		}

		key := fingerprint(loc)
		if i, ok := index[key]; ok {
			catalog[i].Aliases = append(catalog[i].Aliases, id)
			continue
		}
		index[key] = len(catalog)

		_, offset := at.In(loc).Zone()
		catalog = append(catalog, Timezone{
			ID:     id,
			Label:  label(id, offset),
			Offset: offset,
			key:    key,
		})
	}

	for i := range catalog {
		slices.Sort(catalog[i].Aliases)
	}
	slices.SortFunc(catalog, func(a, b Timezone) int {
		if a.Offset != b.Offset {
			return a.Offset - b.Offset
		}
		return strings.Compare(a.ID, b.ID)
	})
	return catalog
}

// Lookup returns the entry for id. An alias resolves to the entry that
// represents its rule set, even when the alias was not among the
// identifiers the catalog was built from.
func (c Catalog) Lookup(id string) (Timezone, bool) {
	for _, tz := range c {
		if tz.ID == id || slices.Contains(tz.Aliases, id) {
			return tz, true
		}
	}

	if id == "" || id == "Local" {
		return Timezone{}, false
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return Timezone{}, false
	}
	key := fingerprint(loc)
	for _, tz := range c {
		if tz.key == key {
			return tz, true
		}
	}
	return Timezone{}, false
}

// Search returns the entries whose label fuzzily matches query, keeping
// catalog order. An empty query matches everything.
func (c Catalog) Search(query string) Catalog {
	if query == "" {
		return c
	}

	labels := make([]string, len(c))
	for i, tz := range c {
		labels[i] = tz.Label
	}

	matches := fuzzy.RankFindNormalizedFold(query, labels)
	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.OriginalIndex
	}
	slices.Sort(indexes)

	result := make(Catalog, len(indexes))
	for i, idx := range indexes {
		result[i] = c[idx]
	}
	return result
}

var (
	allOnce sync.Once
	all     Catalog
	// Source is read by the first call to All.
	Source = DefaultSource()
)

// All returns the process-wide catalog, built on first use from Source.
func All() Catalog {
	allOnce.Do(func() {
		ids, err := Available(Source)
		if err != nil {
			log.Error().Err(err).Msg("Failed to enumerate timezones, falling back to UTC only")
			ids = []string{"UTC"}
		}
		canonical, err := Canonical(Source)
		if err != nil {
			log.Debug().Err(err).Msg("No zone table found, preferring regional names")
		}
		all = Build(ids, time.Now(), canonical...)
		log.Info().Int("identifiers", len(ids)).Int("timezones", len(all)).Msg("Timezone catalog built")
	})
	return all
}
