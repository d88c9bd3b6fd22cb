package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// reportMode is the permission of a written report.
const reportMode = 0o644

// CSVHeader is the header row of an exported report.
var CSVHeader = []string{"operand1", "operand2", "operator", "result", "timestamp"}

// WriteCSV writes the header and one row per entry to w, in the order given.
// It returns the number of data rows written.
func WriteCSV(w io.Writer, entries []Entry) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		row := []string{
			formatFloat(e.Operand1),
			formatFloat(e.Operand2),
			e.Operator,
			formatFloat(e.Result),
			e.Timestamp,
		}
		if err := cw.Write(row); err != nil {
			return i, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush report: %w", err)
	}
	return len(entries), nil
}

// ExportAll writes the full log, oldest first, to destination. The report is
// written to a temporary file next to destination and renamed into place.
func (r *Repository) ExportAll(destination string) (int, error) {
	if strings.TrimSpace(destination) == "" {
		return 0, ErrInvalidDestination
	}

	entries, err := r.All()
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(destination), ".report-*.csv")
	if err != nil {
		return 0, fmt.Errorf("failed to create report: %w", err)
	}
	tmpName := tmp.Name()

	rows, err := WriteCSV(tmp, entries)
	if err == nil {
		if chmodErr := tmp.Chmod(reportMode); chmodErr != nil {
			err = fmt.Errorf("failed to set report permissions: %w", chmodErr)
		}
	}
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close report: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}

	if err := os.Rename(tmpName, destination); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("failed to move report into place: %w", err)
	}
	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
