// Package urglog decodes laser range-finder scan logs into typed scan records.
package urglog

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scan is one decoded log line. It is built once by the parser and not
// modified afterwards.
type Scan struct {
	Kind       string
	Timestamp  int64
	Count      int
	StartAngle float64
	EndAngle   float64
	StepAngle  float64
	EchoCount  int
	Ranges     []int64 // millimeters, one per angular step
}

// Dump writes a human readable summary of the record.
func (s Scan) Dump(w io.Writer) error {
	ranges := make([]string, len(s.Ranges))
	for i, r := range s.Ranges {
		ranges[i] = strconv.FormatInt(r, 10)
	}
	_, err := fmt.Fprintf(w, "=====<%s:%d>=====\nnum:%d start_a:%g end_a:%g step_a:%g echo:%d\n[%s]\n",
		s.Kind, s.Timestamp, s.Count, s.StartAngle, s.EndAngle, s.StepAngle, s.EchoCount,
		strings.Join(ranges, ", "))
	return err
}
