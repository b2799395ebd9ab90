// Package source supplies the gallery's demo data: an in-memory city
// directory searched with simulated latency so the combobox exercises
// debounce, cancellation, and stale-result discard against something that
// behaves like a remote service.
package source

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hypoth-org/hypoth-ui-sub001/combobox"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/logging/events"
)

// Directory is a searchable city registry.
type Directory struct {
	latency  time.Duration
	throttle *throttle
	cities   []string
}

// NewDirectory creates a directory that answers searches after the given
// simulated latency.
func NewDirectory(latency time.Duration) *Directory {
	return &Directory{
		latency:  latency,
		throttle: newThrottle(50 * time.Millisecond),
		cities:   append([]string(nil), cityNames...),
	}
}

// Search implements the combobox loader: it sleeps for the configured
// latency (honoring cancellation), then returns fuzzy-ranked matches.
func (d *Directory) Search(ctx context.Context, query string) ([]combobox.Item, error) {
	d.throttle.wait()
	if d.latency > 0 {
		timer := time.NewTimer(d.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			events.Source.Cancelled(query)
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	matches := d.match(query)
	items := make([]combobox.Item, len(matches))
	for i, name := range matches {
		items[i] = combobox.Item{Value: slug(name), Label: name}
	}
	events.Source.Query(query, len(items))
	return items, nil
}

// All returns every city in alphabetical order.
func (d *Directory) All() []string {
	out := append([]string(nil), d.cities...)
	sort.Strings(out)
	return out
}

func (d *Directory) match(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.All()
	}
	ranks := fuzzy.RankFindNormalizedFold(query, d.cities)
	sort.Sort(ranks)
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

var cityNames = []string{
	"Amsterdam", "Athens", "Auckland", "Bangkok", "Barcelona", "Berlin",
	"Bogota", "Boston", "Brussels", "Budapest", "Buenos Aires", "Cairo",
	"Cape Town", "Chicago", "Copenhagen", "Dublin", "Helsinki", "Hong Kong",
	"Istanbul", "Jakarta", "Lagos", "Lima", "Lisbon", "London", "Madrid",
	"Melbourne", "Mexico City", "Montreal", "Mumbai", "Nairobi", "Oslo",
	"Paris", "Prague", "Reykjavik", "Rome", "San Francisco", "Santiago",
	"Seoul", "Singapore", "Stockholm", "Sydney", "Taipei", "Tokyo",
	"Toronto", "Vienna", "Warsaw", "Wellington", "Zurich",
}
