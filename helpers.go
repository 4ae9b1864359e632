package vesync

import (
	"encoding/json"
	"fmt"
	"math"
)

// unmarshalResponse unmarshals JSON data with consistent error formatting.
// This helper reduces boilerplate across all API response parsing.
func unmarshalResponse[T any](data []byte, resourceName string) (*T, error) {
	var resp T
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w (body: %s)", resourceName, err, truncatePreview(data))
	}
	return &resp, nil
}

// truncatePreview returns a truncated string for logs and error messages.
func truncatePreview(data []byte) string {
	s := string(data)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

// GetString navigates a nested map and returns a string value.
// Returns the value and true if found, or empty string and false if not.
//
// Example:
//
//	// Extract: resp["result"]["deviceStatus"]
//	status, ok := GetString(resp, "result", "deviceStatus")
func GetString(data map[string]any, keys ...string) (string, bool) {
	val, ok := navigate(data, keys)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// GetInt navigates a nested map and returns an int value.
// Handles JSON's float64 representation of numbers.
// Returns false if the value is outside the valid int range.
//
// Example:
//
//	// Extract: resp["result"]["result"]["humidity"]
//	humidity, ok := GetInt(resp, "result", "result", "humidity")
func GetInt(data map[string]any, keys ...string) (int, bool) {
	val, ok := navigate(data, keys)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		// Check for overflow before conversion
		if v > float64(math.MaxInt) || v < float64(math.MinInt) || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		if v > int64(math.MaxInt) || v < int64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// GetFloat navigates a nested map and returns a float64 value.
//
// Example:
//
//	// Extract: resp["result"]["energy"]
//	energy, ok := GetFloat(resp, "result", "energy")
func GetFloat(data map[string]any, keys ...string) (float64, bool) {
	val, ok := navigate(data, keys)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetBool navigates a nested map and returns a bool value.
func GetBool(data map[string]any, keys ...string) (bool, bool) {
	val, ok := navigate(data, keys)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// GetMap navigates a nested map and returns a map[string]any value.
//
// Example:
//
//	// Extract: resp["result"]["result"]
//	inner, ok := GetMap(resp, "result", "result")
func GetMap(data map[string]any, keys ...string) (map[string]any, bool) {
	val, ok := navigate(data, keys)
	if !ok {
		return nil, false
	}
	m, ok := val.(map[string]any)
	return m, ok
}

// GetArray navigates a nested map and returns a []any value.
func GetArray(data map[string]any, keys ...string) ([]any, bool) {
	val, ok := navigate(data, keys)
	if !ok {
		return nil, false
	}
	arr, ok := val.([]any)
	return arr, ok
}

// navigate walks through a nested map following the provided keys.
// Returns the final value and true if successful, or nil and false if any key is missing.
func navigate(data map[string]any, keys []string) (any, bool) {
	if len(keys) == 0 {
		return data, true
	}

	current := data
	for i, key := range keys {
		val, exists := current[key]
		if !exists {
			return nil, false
		}

		// If this is the last key, return the value
		if i == len(keys)-1 {
			return val, true
		}

		// Otherwise, the value must be a map to continue navigating
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}
