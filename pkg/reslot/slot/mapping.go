package slot

import (
	"fmt"
	"strings"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// Pair maps a source slot onto a target slot. Blank marks a mapping with an
// empty right-hand side ("c03="), which callers may choose to skip.
type Pair struct {
	Source ID
	Target ID
	Blank  bool
}

func (p Pair) String() string {
	if p.Blank {
		return p.Source.String() + "="
	}
	return p.Source.String() + "=" + p.Target.String()
}

func splitMapping(item string) (string, string, error) {
	if k, v, ok := strings.Cut(item, "="); ok {
		return k, v, nil
	}
	if k, v, ok := strings.Cut(item, ":"); ok {
		return k, v, nil
	}
	return "", "", fmt.Errorf("%w: %q, expected cXX=cYY", rerrors.ErrInvalidMapping, item)
}

// ParsePairs parses repeatable "cXX=cYY" (or "cXX:cYY") arguments. A repeated
// source keeps its first position and takes the last target.
func ParsePairs(items []string) ([]Pair, error) {
	var pairs []Pair
	index := make(map[ID]int)
	for _, item := range items {
		k, v, err := splitMapping(item)
		if err != nil {
			return nil, err
		}
		src, err := Parse(k)
		if err != nil {
			return nil, fmt.Errorf("%w: source of %q: %v", rerrors.ErrInvalidMapping, item, err)
		}
		p := Pair{Source: src}
		if strings.TrimSpace(strings.ReplaceAll(v, "+", "")) == "" {
			p.Blank = true
		} else if p.Target, err = Parse(v); err != nil {
			return nil, fmt.Errorf("%w: target of %q: %v", rerrors.ErrInvalidMapping, item, err)
		}
		if i, ok := index[src]; ok {
			pairs[i] = p
			continue
		}
		index[src] = len(pairs)
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ParseShares parses "cXX=cYY" share overrides keyed by source slot.
func ParseShares(items []string) (map[ID]ID, error) {
	shares := make(map[ID]ID, len(items))
	for _, item := range items {
		k, v, err := splitMapping(item)
		if err != nil {
			return nil, err
		}
		src, err := Parse(k)
		if err != nil {
			return nil, fmt.Errorf("%w: share source of %q: %v", rerrors.ErrInvalidMapping, item, err)
		}
		dst, err := Parse(v)
		if err != nil {
			return nil, fmt.Errorf("%w: share target of %q: %v", rerrors.ErrInvalidMapping, item, err)
		}
		shares[src] = dst
	}
	return shares, nil
}
