// Package aria provides the id and announcement plumbing every behavior
// shares: injectable id generation, described-by wiring, and a live-region
// announcer adapters render into their own markup.
package aria

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator mints element ids. Behaviors accept one so adapters that need
// deterministic ids (server rendering, snapshot tests) can inject their own.
type Generator func() string

// NewGenerator returns a prefixed counter generator. Ids are deterministic
// given call order, which is what snapshot-oriented adapters want.
func NewGenerator(prefix string) Generator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// UUIDGenerator returns a generator minting random, collision-free ids for
// adapters that mount many behavior instances into one host tree.
func UUIDGenerator(prefix string) Generator {
	return func() string {
		return prefix + "-" + uuid.NewString()
	}
}

// DescribedBy joins element ids into an aria-describedby value, skipping
// empties. Returns "" when nothing remains, so adapters can omit the
// attribute entirely.
func DescribedBy(ids ...string) string {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		kept = append(kept, id)
	}
	return strings.Join(kept, " ")
}
