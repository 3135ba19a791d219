package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAnchorPolicy indicates an unknown heading anchor policy name.
var ErrInvalidAnchorPolicy = errors.New("invalid anchor policy")

// AnchorPolicy selects how heading ids are generated.
type AnchorPolicy string

// Supported anchor policies.
const (
	AnchorsFlat         AnchorPolicy = "flat"         // item1, item2, ... across all levels
	AnchorsHierarchical AnchorPolicy = "hierarchical" // item1, item1-1, item1-2, item2, ...
	AnchorsHash         AnchorPolicy = "hash"         // base64 of the heading text
)

// DefaultAnchorPolicy is used when no policy is configured.
const DefaultAnchorPolicy = AnchorsFlat

// anchorPrefix prefixes every counter-based anchor.
const anchorPrefix = "item"

// ParseAnchorPolicy converts a policy name to an AnchorPolicy (case-insensitive).
// An empty name yields DefaultAnchorPolicy.
func ParseAnchorPolicy(name string) (AnchorPolicy, error) {
	switch AnchorPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultAnchorPolicy, nil
	case AnchorsFlat:
		return AnchorsFlat, nil
	case AnchorsHierarchical:
		return AnchorsHierarchical, nil
	case AnchorsHash:
		return AnchorsHash, nil
	default:
		return "", fmt.Errorf("%w: %q (must be flat, hierarchical, or hash)", ErrInvalidAnchorPolicy, name)
	}
}

// AnchorAssigner hands out heading ids in document order.
// The second return value is false when the heading gets no id.
// Implementations hold per-document state and must not be shared across
// conversions.
type AnchorAssigner interface {
	Assign(level int, text string) (string, bool)
}

// NewAnchorAssigner returns a fresh assigner for one conversion.
// dedupe only affects the hash policy.
func NewAnchorAssigner(policy AnchorPolicy, dedupe bool) (AnchorAssigner, error) {
	switch policy {
	case "", AnchorsFlat:
		return &flatAnchors{index: 1}, nil
	case AnchorsHierarchical:
		return &hierarchicalAnchors{index: 1, indexH2: 1}, nil
	case AnchorsHash:
		h := &hashAnchors{}
		if dedupe {
			h.seen = make(map[string]int)
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnchorPolicy, policy)
	}
}

// flatAnchors numbers every heading, whatever its level.
type flatAnchors struct {
	index int
}

func (a *flatAnchors) Assign(_ int, _ string) (string, bool) {
	id := anchorPrefix + strconv.Itoa(a.index)
	a.index++
	return id, true
}

// hierarchicalAnchors numbers h1 and h2 headings as item<top> and item<top>-<sub>.
// index is the next top-level number; indexH2 is the next sub number.
type hierarchicalAnchors struct {
	index   int
	indexH2 int
}

func (a *hierarchicalAnchors) Assign(level int, _ string) (string, bool) {
	switch level {
	case 1:
		id := anchorPrefix + strconv.Itoa(a.index)
		a.index++
		a.indexH2 = 1
		return id, true
	case 2:
		id := anchorPrefix + strconv.Itoa(a.index-1) + "-" + strconv.Itoa(a.indexH2)
		a.indexH2++
		return id, true
	default:
		return "", false
	}
}

// hashAnchors derives the id from the heading text. With a non-nil seen map,
// repeated texts get a numeric suffix.
type hashAnchors struct {
	seen map[string]int
}

func (a *hashAnchors) Assign(_ int, text string) (string, bool) {
	id := base64.StdEncoding.EncodeToString([]byte(text))
	if a.seen == nil {
		return id, true
	}

	n := a.seen[id]
	a.seen[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id, true
}
