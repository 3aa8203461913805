package types

import "errors"

// Sentinel errors for condition-tree operations.
var (
	// ErrEmptyForest indicates a save was attempted with zero top-level conditions.
	ErrEmptyForest = errors.New("filter has no conditions")

	// ErrIncompleteCondition indicates a condition is missing its attribute, operator or value.
	ErrIncompleteCondition = errors.New("condition is missing attribute, operator or value")

	// ErrMissingGroupConnector indicates a condition has children but no child-group connector.
	ErrMissingGroupConnector = errors.New("condition group has no logical connector")

	// ErrMissingSiblingConnector indicates a non-last condition has no connector to its next sibling.
	ErrMissingSiblingConnector = errors.New("condition has no logical connector to the next condition")

	// ErrEmptyProjection indicates no output fields were selected.
	ErrEmptyProjection = errors.New("no fields selected for output")

	// ErrUnknownOperator indicates an operator label has no backend translation.
	ErrUnknownOperator = errors.New("operator has no backend translation")

	// ErrUnknownAttribute indicates a condition references an attribute the schema does not publish.
	ErrUnknownAttribute = errors.New("attribute not in schema")

	// ErrUnknownConnector indicates a logical connector the schema does not publish.
	ErrUnknownConnector = errors.New("logical connector not in schema")

	// ErrValueTypeMismatch indicates a value cannot be read as its attribute's data type.
	ErrValueTypeMismatch = errors.New("value does not match attribute type")

	// ErrIdentityCollision indicates two nodes share an id. Programming error; fail fast.
	ErrIdentityCollision = errors.New("duplicate condition id")

	// ErrNodeNotFound indicates an id does not belong to any node in the session.
	ErrNodeNotFound = errors.New("condition not found")

	// ErrPathTooDeep indicates a canonical path exceeds MaxPathDepth.
	ErrPathTooDeep = errors.New("field path exceeds maximum depth")

	// ErrFieldNotFound indicates a canonical path could not be resolved in a result row.
	ErrFieldNotFound = errors.New("field not found")
)
