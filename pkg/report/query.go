package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/opsgrid/dbfleet/pkg/io/logging"

	"github.com/itchyny/gojq"
	"github.com/ohler55/ojg/oj"
)

// Query runs a jq expression over the JSON form of rows and writes each
// result as a JSON line, replacing the table output.
func Query(w io.Writer, rows interface{}, expr string) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", expr, err)
	}

	// Round-trip through JSON so gojq sees plain maps and float64 numbers.
	var obj interface{}
	if err := json.Unmarshal(logging.GetLogManager().JSON(rows), &obj); err != nil {
		return fmt.Errorf("reparsing inventory: %w", err)
	}

	iter := query.Run(obj)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return fmt.Errorf("query failed: %w", err)
		}
		fmt.Fprintln(w, oj.JSON(v))
	}
	return nil
}
