package rest

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stoneyard/remnant-portal/internal/store"
)

// ListRemnantsQueryParams holds query parameters for GET /api/remnants.
// Numeric bounds stay strings at the binding layer so malformed input can be
// treated as "not provided" instead of an error.
type ListRemnantsQueryParams struct {
	Materials []string `form:"material"`
	Stone     string   `form:"stone"`
	Status    string   `form:"status"`
	Color     string   `form:"color"`
	MinWidth  string   `form:"min-width"`
	MinHeight string   `form:"min-height"`
	Owner     string   `form:"owner"`
}

// ParseListRemnantsQuery parses query parameters for GET /api/remnants
func ParseListRemnantsQuery(c *gin.Context) (*ListRemnantsQueryParams, error) {
	var params ListRemnantsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Stone = strings.TrimSpace(params.Stone)
	params.Status = strings.TrimSpace(params.Status)
	params.Color = strings.TrimSpace(params.Color)
	return &params, nil
}

// Filter converts the query parameters into a store filter
func (p *ListRemnantsQueryParams) Filter() store.RemnantFilter {
	return store.RemnantFilter{
		Materials: compact(p.Materials),
		Stone:     p.Stone,
		Status:    p.Status,
		Color:     p.Color,
		MinWidth:  asNumber(p.MinWidth),
		MinHeight: asNumber(p.MinHeight),
		Owner:     p.Owner,
	}
}

// asNumber parses a user-supplied numeric criterion. Empty or non-numeric
// input means the criterion was not provided, never zero and never an error.
func asNumber(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// compact drops empty values from a repeated query parameter
func compact(values []string) []string {
	result := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
