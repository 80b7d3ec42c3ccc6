package server

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errOutOfRange = errors.New("out_of_range")
	errNotFinite  = errors.New("not_finite")
)

// parseOptional returns nil for a blank query value.
func parseOptional[T any](value string, parse func(string) (T, error)) (*T, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	v, err := parse(value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptionalBool(value string) (*bool, error) {
	return parseOptional(value, strconv.ParseBool)
}

func parseOptionalInt64(value string) (*int64, error) {
	return parseOptional(value, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

// parseOptionalFloat rejects NaN and infinities, which ParseFloat accepts.
func parseOptionalFloat(value string) (*float64, error) {
	return parseOptional(value, func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errNotFinite
		}
		return v, nil
	})
}

// parseBoundedInt returns def for an empty value and rejects values outside [lo, hi].
func parseBoundedInt(value string, def, lo, hi int) (int, error) {
	n, err := parseOptional(value, strconv.Atoi)
	switch {
	case err != nil:
		return 0, err
	case n == nil:
		return def, nil
	case *n < lo || *n > hi:
		return 0, errOutOfRange
	}
	return *n, nil
}
