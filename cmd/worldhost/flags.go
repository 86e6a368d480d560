package main

import (
	"fmt"
	"strconv"
	"strings"
)

func parseVec(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
