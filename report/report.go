// Package report serializes audit results into a human-readable form. It
// holds no decision logic; rendering is lossless for every field present on
// the value it is given.
package report

import (
	"encoding/json"
	"fmt"
)

// Render returns an indented JSON dump of the result.
func Render(result any) (string, error) {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return "", fmt.Errorf("could not encode report: %w", err)
	}
	return string(data), nil
}
