// internal/filter/coercion.go
package filter

import (
	"strconv"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Value checks against attribute data types.
 *
 * Values are edited as text and compiled verbatim, so a check only decides
 * whether a literal is acceptable for its attribute. Two types exist:
 *   - Integer: strict. Surrounding whitespace is allowed, a sign is allowed,
 *     decimals, exponents and booleans are rejected.
 *   - String: lenient. Any value is accepted.
 *
 * Unknown data types are treated as String. A value naming another field is a
 * field reference, not a literal; callers skip the check for those.
 */

// CheckValueType reports whether value is a valid literal for dataType.
// Returns ErrValueTypeMismatch when an Integer attribute gets a non-integer value.
func CheckValueType(value types.Value, dataType string) error {
	switch dataType {
	case types.DataTypeInteger:
		return checkInteger(value)
	default:
		return nil
	}
}

// checkInteger accepts base-10 integers that fit in int64.
func checkInteger(value types.Value) error {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" {
		return types.ErrValueTypeMismatch
	}
	if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
		return types.ErrValueTypeMismatch
	}
	return nil
}
