package core

import (
	"fmt"
	"strings"
)

// Substitution slots recognized in platform URL patterns. A well-formed
// pattern carries either one positional slot or the named first/last pair,
// never both.
const (
	PositionalSlot = "{}"
	FirstSlot      = "{first}"
	LastSlot       = "{last}"
)

// ValidatePattern checks the slot invariant for a URL pattern.
func ValidatePattern(pattern string) error {
	positional := strings.Contains(pattern, PositionalSlot)
	named := strings.Contains(pattern, FirstSlot) || strings.Contains(pattern, LastSlot)

	switch {
	case positional && named:
		return fmt.Errorf("pattern mixes positional and named slots")
	case !positional && !named:
		return fmt.Errorf("pattern has no substitution slot")
	case positional && strings.Count(pattern, PositionalSlot) > 1:
		return fmt.Errorf("pattern has more than one positional slot")
	}
	return nil
}
