package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GetString extracts a String value from the given environment variable
func GetString(name string, defaultValue ...string) string {
	value := os.Getenv(name)
	if value == "" && len(defaultValue) > 0 {
		value = defaultValue[0]
	}
	return value
}

// MustGetString extracts a String value from the given environment variable
// It panics if the environment variable is not present
func MustGetString(name string) string {
	value := os.Getenv(name)
	if value == "" {
		panic(fmt.Sprintf("%s can't be empty", name))
	}
	return value
}

// GetInt extracts an Int value from the given environment variable
func GetInt(name string, defaultValue ...int) int {
	return parseOr(name, strconv.Atoi, defaultValue...)
}

// MustGetInt extracts an Int value from the given environment variable
// It panics if the environment variable is not present or not an integer
func MustGetInt(name string) int {
	return mustParse(name, "int", strconv.Atoi)
}

// GetBool extracts a Bool value from the given environment variable
func GetBool(name string, defaultValue ...bool) bool {
	return parseOr(name, strconv.ParseBool, defaultValue...)
}

// GetDuration accepts Go duration syntax ("30s", "2m") or a bare number of
// seconds.
func GetDuration(name string, defaultValue ...time.Duration) time.Duration {
	return parseOr(name, parseDuration, defaultValue...)
}

func parseDuration(raw string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

func parseOr[T any](name string, parse func(string) (T, error), defaultValue ...T) T {
	value, err := parse(os.Getenv(name))
	if err != nil && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func mustParse[T any](name string, kind string, parse func(string) (T, error)) T {
	value, err := parse(os.Getenv(name))
	if err != nil {
		panic(fmt.Sprintf("%s must contain a %s value!", name, kind))
	}
	return value
}
