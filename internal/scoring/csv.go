package scoring

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader is the fixed column order of the results export.
var csvHeader = []string{
	"Brand",
	"Sauce",
	"Final Weighted Score",
	"Avg Pro Score",
	"Avg Community Score",
	"Avg Supplier Score",
}

// WriteCSV renders aggregated results in the fixed export layout. Judge-type
// groups without scores render "N/A".
func WriteCSV(w io.Writer, results []SauceResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		record := []string{
			result.Brand,
			result.Sauce,
			formatScore(result.Final, result.HasScores),
			formatGroup(result.Pro),
			formatGroup(result.Community),
			formatGroup(result.Supplier),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatGroup(stat GroupStat) string {
	return formatScore(stat.Mean, stat.Count > 0)
}

func formatScore(value float64, present bool) string {
	if !present {
		return "N/A"
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}
