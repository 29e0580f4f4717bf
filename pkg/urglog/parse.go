package urglog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fixed header layout of a scan line.
const (
	fieldKind = iota
	fieldTimestamp
	fieldCount
	fieldStartAngle
	fieldEndAngle
	fieldStepAngle
	fieldEchoCount
	headerFields

	rangeStride = 3
)

const maxLineSize = 4 * 1024 * 1024

var errMissingField = errors.New("missing field")

// ReadFile opens path, decodes every scan line and closes the file.
func ReadFile(path string) ([]Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[urglog] Error closing %s: %v", path, err)
		}
	}()

	scans, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[urglog] Loaded %d scans from %s", len(scans), path)
	return scans, nil
}

// Parse decodes r line by line. The first malformed line aborts the whole
// parse; no partial result is returned.
func Parse(r io.Reader) ([]Scan, error) {
	var scans []Scan
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		s, err := parseFields(fields)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
				pe.Text = line
			}
			return nil, err
		}
		scans = append(scans, s)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: lineNo + 1, Field: "line", Err: err}
		}
		return nil, err
	}
	return scans, nil
}

// ParseLine decodes a single scan line.
func ParseLine(line string) (Scan, error) {
	s, err := parseFields(strings.Fields(line))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = 1
			pe.Text = line
		}
		return Scan{}, err
	}
	return s, nil
}

func parseFields(fields []string) (Scan, error) {
	if len(fields) < headerFields {
		return Scan{}, &ParseError{Field: "header", Err: fmt.Errorf("%w: got %d fields, need %d", errMissingField, len(fields), headerFields)}
	}

	var (
		s   = Scan{Kind: fields[fieldKind]}
		err error
	)
	if s.Timestamp, err = strconv.ParseInt(fields[fieldTimestamp], 10, 64); err != nil {
		return Scan{}, &ParseError{Field: "timestamp", Err: err}
	}
	if s.Count, err = strconv.Atoi(fields[fieldCount]); err != nil {
		return Scan{}, &ParseError{Field: "count", Err: err}
	}
	if s.StartAngle, err = strconv.ParseFloat(fields[fieldStartAngle], 64); err != nil {
		return Scan{}, &ParseError{Field: "start_angle", Err: err}
	}
	if s.EndAngle, err = strconv.ParseFloat(fields[fieldEndAngle], 64); err != nil {
		return Scan{}, &ParseError{Field: "end_angle", Err: err}
	}
	if s.StepAngle, err = strconv.ParseFloat(fields[fieldStepAngle], 64); err != nil {
		return Scan{}, &ParseError{Field: "step_angle", Err: err}
	}
	if s.EchoCount, err = strconv.Atoi(fields[fieldEchoCount]); err != nil {
		return Scan{}, &ParseError{Field: "echo_count", Err: err}
	}

	// count is untrusted; size by the tokens actually present.
	if n := min(s.Count, len(fields)); n > headerFields {
		s.Ranges = make([]int64, 0, (n-headerFields+rangeStride-1)/rangeStride)
	}
	for i := headerFields; i < s.Count; i += rangeStride {
		field := fmt.Sprintf("range[%d]", len(s.Ranges))
		if i >= len(fields) {
			return Scan{}, &ParseError{Field: field, Err: fmt.Errorf("%w: index %d", errMissingField, i)}
		}
		v, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return Scan{}, &ParseError{Field: field, Err: err}
		}
		s.Ranges = append(s.Ranges, v)
	}
	return s, nil
}
