// internal/filter/operators.go
package filter

import "strings"

/*
 * Operator translation.
 *
 * The editor offers comparison operators by their display label; the search
 * service parses two-letter tokens. Labels without a translation become the
 * UNKNOWN sentinel token instead of an error so that a caller can inspect the
 * serialized filter and refuse to send it.
 */

// UnknownOperator is emitted for operator labels with no backend token.
const UnknownOperator = "UNKNOWN"

// Operator labels understood by the search service.
const (
	OpEqualTo              = "EqualTo"
	OpGreaterThan          = "GreaterThan"
	OpLessThan             = "LessThan"
	OpGreaterThanOrEqualTo = "GreaterThanOrEqualTo"
	OpLessThanOrEqualTo    = "LessThanOrEqualTo"
	OpNotEqualTo           = "NotEqualTo"
)

// Logical connectors as the search service's parser splits on them.
const (
	LogicalAnd = "AND"
	LogicalOr  = "OR"
)

// TranslateOperator maps a UI operator label to its backend token.
func TranslateOperator(label string) string {
	switch label {
	case OpEqualTo:
		return "eq"
	case OpGreaterThan:
		return "gt"
	case OpLessThan:
		return "lt"
	case OpGreaterThanOrEqualTo:
		return "ge"
	case OpLessThanOrEqualTo:
		return "le"
	case OpNotEqualTo:
		return "ne"
	default:
		return UnknownOperator
	}
}

// OperatorLabels returns the translatable labels in table order.
func OperatorLabels() []string {
	return []string{
		OpEqualTo,
		OpGreaterThan,
		OpLessThan,
		OpGreaterThanOrEqualTo,
		OpLessThanOrEqualTo,
		OpNotEqualTo,
	}
}

// LogicalConnectors returns the connectors the search service accepts.
func LogicalConnectors() []string {
	return []string{LogicalAnd, LogicalOr}
}

// HasUnknownOperator reports whether serialized filters contain the UNKNOWN token.
// Matches whole space-delimited tokens so a value like "UNKNOWNS" does not trigger;
// a literal value of UNKNOWN does. UnknownOperatorLabels inspects the exported
// forest instead when that distinction matters.
func HasUnknownOperator(filters string) bool {
	for _, tok := range strings.Fields(filters) {
		if strings.Trim(tok, "()") == UnknownOperator {
			return true
		}
	}
	return false
}
