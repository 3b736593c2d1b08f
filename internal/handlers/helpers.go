package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter. The ok flag is false when
// the parameter is missing or not a number.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseIDValue converts a decoded JSON value into an id. JSON numbers arrive
// as float64; anything non-numeric, fractional, or non-positive is rejected.
func parseIDValue(v any) (uint64, bool) {
	num, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if num <= 0 || num != float64(uint64(num)) {
		return 0, false
	}
	return uint64(num), true
}
