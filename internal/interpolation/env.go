// Package interpolation expands ${VAR} references inside settings values.
package interpolation

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// Pattern for ${VAR_NAME} and ${VAR_NAME:default}; the colon is captured so an empty default is distinguishable.
var envVarWithDefaultPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:)?([^}]*)\}`)

// ErrUndefinedVariable is returned for a ${VAR} reference with no value and no default.
var ErrUndefinedVariable = errors.New("environment variable not defined")

// ExpandEnvVars expands ${VAR_NAME} and ${VAR_NAME:default_value} references.
//
// A set variable wins, even when it is empty. An unset variable uses its default when one is
// given (${VAR:} yields ""). An unset variable without a default is left untouched and reported.
func ExpandEnvVars(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	var missingVars []error
	result := envVarWithDefaultPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatches := envVarWithDefaultPattern.FindStringSubmatch(match)
		varName := submatches[1]

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		if submatches[2] == ":" {
			return submatches[3]
		}

		missingVars = append(missingVars, fmt.Errorf("%w: %s", ErrUndefinedVariable, varName))
		return match
	})

	return result, errors.Join(missingVars...)
}
