package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLen bounds style and template names.
const maxAssetNameLen = 64

// ValidateAssetName checks that a style or template name can be joined to a
// base directory as <name>.css or <name>.html without leaving it.
// Names may hold letters, digits, '-' and '_' only.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetNameLen:
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidAssetName, name, maxAssetNameLen)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidAssetName, name)
	case strings.Contains(name, "."):
		return fmt.Errorf("%w: %q contains a dot", ErrInvalidAssetName, name)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidAssetName, name, r)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
