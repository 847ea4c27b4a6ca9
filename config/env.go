package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvString returns the value of an environment variable and whether it was
// set to something non-empty.
func EnvString(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt parses an integer environment variable. The boolean reports whether
// the variable was present; the error reports a malformed value.
func EnvInt(name string) (int, bool, error) {
	value, ok := EnvString(name)
	if !ok {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, true, fmt.Errorf("parse %s: %w", name, err)
	}
	return parsed, true, nil
}
