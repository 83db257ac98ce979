package users

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userholder/internal/common"
)

// SplitFullName splits a display name into first and last name. A single
// word yields an empty last name; more than two words, or none, is an
// ErrInvalidNameFormat.
func SplitFullName(fullName string) (firstName, lastName string, err error) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("%w: got %d words in %q", common.ErrInvalidNameFormat, len(parts), fullName)
	}
}
