package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// allFormats are written, in order, when the "all" format is requested.
var allFormats = []string{"console", "csv", "detailed-csv", "json"}

// GenerateReport writes the comparison in the requested format to dir and
// returns the files written. "all" writes every file-oriented format.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range allFormats {
			written, err := GenerateReport(results, name, dir)
			if err != nil {
				return files, err
			}
			files = append(files, written...)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	filename, err := WriteFormatted(f, results, dir, ExtensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{filename}, nil
}
