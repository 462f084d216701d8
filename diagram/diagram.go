// Package diagram renders the issue-category breakdown as an image. It is
// purely presentational and consumes only the final severity counts.
package diagram

import (
	"bytes"
	"encoding/base64"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
)

const dataURIPrefix = "data:image/png;base64,"

// Generate renders a pie chart of the severity counts and returns it as a
// PNG data URI. Categories with a zero count are left out; if every count is
// zero there is nothing to draw and the empty string is returned.
func Generate(critical, warning, info int) (string, error) {
	values := make([]chart.Value, 0, 3)
	for _, slice := range []struct {
		label string
		count int
	}{
		{"Critical", critical},
		{"Warning", warning},
		{"Info", info},
	} {
		if slice.count > 0 {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s (%d)", slice.label, slice.count),
				Value: float64(slice.count),
			})
		}
	}
	if len(values) == 0 {
		return "", nil
	}

	pie := chart.PieChart{
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("could not render issues diagram: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
