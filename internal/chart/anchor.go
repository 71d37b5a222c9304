package chart

import (
	"fmt"
	"strings"
)

// Anchor names the corner of the data area where a legend is placed.
type Anchor string

const (
	UpperLeft  Anchor = "upper left"
	LowerLeft  Anchor = "lower left"
	UpperRight Anchor = "upper right"
	LowerRight Anchor = "lower right"
)

// ParseAnchor accepts "upper left", "upper-left" or "upper_left" in any case.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	switch a := Anchor(norm); a {
	case UpperLeft, LowerLeft, UpperRight, LowerRight:
		return a, nil
	}
	return "", fmt.Errorf("unknown legend anchor %q", s)
}

func (a Anchor) top() bool  { return a == UpperLeft || a == UpperRight }
func (a Anchor) left() bool { return a == UpperLeft || a == LowerLeft }
