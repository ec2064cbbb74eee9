package biomegraph

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfiguration implies the given settings cannot produce a terrain
	// (no samples, no map, no biomes etc).
	ErrConfiguration = errors.New("invalid configuration")

	// ErrLookup is returned when asked about a node or site we don't know.
	ErrLookup = errors.New("lookup failed")
)
