package common

import (
	"net/http"
	"strconv"
)

// CursorParams represents cursor pagination parameters. Listings page
// with an opaque cursor rather than page numbers, matching how the
// store iterates.
type CursorParams struct {
	Limit     int    `json:"limit"`
	NextToken string `json:"next_token,omitempty"`
}

// ExtractCursorParams extracts cursor pagination parameters from the
// request query string, clamping the limit to maxLimit
func ExtractCursorParams(r *http.Request, defaultLimit, maxLimit int) CursorParams {
	params := CursorParams{
		Limit: defaultLimit,
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > maxLimit {
				l = maxLimit
			}
			params.Limit = l
		}
	}

	params.NextToken = r.URL.Query().Get("next_token")

	return params
}

// PaginatedResult represents one page of a cursor-paginated listing
type PaginatedResult struct {
	Items     interface{} `json:"items"`
	NextToken string      `json:"next_token,omitempty"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult(items interface{}, nextToken string) *PaginatedResult {
	return &PaginatedResult{
		Items:     items,
		NextToken: nextToken,
	}
}
