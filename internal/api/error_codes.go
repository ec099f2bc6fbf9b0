// internal/api/error_codes.go
package api

// API error code constants
const (
	// Generic errors
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorInternalError = "INTERNAL_ERROR"

	// Parsing and category errors
	ErrorUnknownCategory = "UNKNOWN_CATEGORY"
	ErrorEmptyText       = "EMPTY_TEXT"

	// Skeleton errors
	ErrorSkeletonNotFound = "SKELETON_NOT_FOUND"
	ErrorUnknownComponent = "UNKNOWN_COMPONENT"

	// Variant errors
	ErrorInvalidCount = "INVALID_COUNT"

	// Catalog errors
	ErrorMissingRuleData = "MISSING_RULE_DATA"
)
