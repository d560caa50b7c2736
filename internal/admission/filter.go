// Package admission decides which watched-directory paths are work
// orders. Producers name orders after a timestamp: a 4-digit year
// token followed by four 2-digit tokens (month, day, hour, minute)
// joined by underscores, with a .txt extension.
package admission

import (
	"path/filepath"
	"regexp"
)

var orderName = regexp.MustCompile(`^\d{4}(_\d{2}){4}\.txt$`)

// Matches reports whether the final segment of path names a work order.
// It is a pure predicate; non-matching paths are simply not hopper's
// business.
func Matches(path string) bool {
	return orderName.MatchString(filepath.Base(path))
}
