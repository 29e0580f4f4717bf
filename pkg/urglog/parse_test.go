package urglog

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// 5 samples: count 22 consumes indices 7, 10, 13, 16, 19.
const sampleLine = "ME 1000 22 -135.0 135.0 0.25 1 1000 5 9 2000 5 9 35000 0 0 1500 5 9 60000 0 0"

func TestParseLine(t *testing.T) {
	got, err := ParseLine(sampleLine)
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	want := Scan{
		Kind:       "ME",
		Timestamp:  1000,
		Count:      22,
		StartAngle: -135,
		EndAngle:   135,
		StepAngle:  0.25,
		EchoCount:  1,
		Ranges:     []int64{1000, 2000, 35000, 1500, 60000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseLine mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRangeCount(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{7, 0},
		{8, 1},
		{10, 1},
		{11, 2},
		{13, 2},
		{14, 3},
		{22, 5},
	}
	fields := strings.Fields(sampleLine)
	for _, tt := range tests {
		fields[fieldCount] = strconv.Itoa(tt.count)
		s, err := ParseLine(strings.Join(fields, " "))
		if err != nil {
			t.Fatalf("count=%d: unexpected error: %v", tt.count, err)
		}
		if len(s.Ranges) != tt.want {
			t.Errorf("count=%d: expected %d ranges, got %d", tt.count, tt.want, len(s.Ranges))
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"too few fields", "ME 1000 22 -135.0 135.0 0.25", "header"},
		{"bad timestamp", "ME abc 22 -135.0 135.0 0.25 1", "timestamp"},
		{"bad count", "ME 1000 2x -135.0 135.0 0.25 1", "count"},
		{"bad start angle", "ME 1000 7 west 135.0 0.25 1", "start_angle"},
		{"bad end angle", "ME 1000 7 -135.0 ? 0.25 1", "end_angle"},
		{"bad step angle", "ME 1000 7 -135.0 135.0 - 1", "step_angle"},
		{"bad echo count", "ME 1000 7 -135.0 135.0 0.25 1.5", "echo_count"},
		{"bad range", "ME 1000 11 -135.0 135.0 0.25 1 1000 0 0 far", "range[1]"},
		{"missing range", "ME 1000 14 -135.0 135.0 0.25 1 1000 0 0", "range[1]"},
		{"huge count", "ME 1000 9223372036854775807 -135 135 0.25 1 1000 0 0", "range[1]"},
		{"large count", "ME 1000 2000000000 -135 135 0.25 1 1000 0 0 2000", "range[2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseLine(tt.line)
			if err == nil {
				t.Fatalf("Expected error, got scan %+v", s)
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("Expected ErrMalformedRecord, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, pe.Field)
			}
			if pe.Text != tt.line {
				t.Errorf("Expected raw line %q, got %q", tt.line, pe.Text)
			}
			if s.Ranges != nil || s.Kind != "" {
				t.Errorf("Expected zero Scan on error, got %+v", s)
			}
		})
	}
}

func TestParseSkipsBlankAndInvalidLines(t *testing.T) {
	input := "\n   \n" + sampleLine + "\n\xff\xfe garbage\n\t\n" + strings.Replace(sampleLine, "1000 22", "1100 22", 1) + "\n"
	scans, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("Expected 2 scans, got %d", len(scans))
	}
	if scans[0].Timestamp != 1000 || scans[1].Timestamp != 1100 {
		t.Errorf("Expected timestamps 1000, 1100 in order, got %d, %d", scans[0].Timestamp, scans[1].Timestamp)
	}
}

func TestParseFailsWholeRun(t *testing.T) {
	input := sampleLine + "\nME 2000 oops\n" + sampleLine + "\n"
	scans, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("Expected error for malformed second line")
	}
	if scans != nil {
		t.Errorf("Expected no partial result, got %d scans", len(scans))
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if pe.Line != 2 {
		t.Errorf("Expected line 2, got %d", pe.Line)
	}
	if pe.Text != "ME 2000 oops" {
		t.Errorf("Expected raw line in error, got %q", pe.Text)
	}
}

func TestParseRejectsOverlongLine(t *testing.T) {
	input := sampleLine + "\n" + strings.Repeat("9", maxLineSize+1) + "\n"
	scans, err := Parse(strings.NewReader(input))
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("Expected ErrMalformedRecord, got %v", err)
	}
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("Expected wrapped bufio.ErrTooLong, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Field != "line" || pe.Line != 2 {
		t.Errorf("Expected ParseError on field \"line\" at line 2, got %v", err)
	}
	if scans != nil {
		t.Errorf("Expected no partial result, got %d scans", len(scans))
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urglog")
	if err := os.WriteFile(path, []byte(sampleLine+"\n"+sampleLine+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}
	scans, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(scans) != 2 {
		t.Errorf("Expected 2 scans, got %d", len(scans))
	}

	_, err = ReadFile(filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestDump(t *testing.T) {
	s := Scan{Kind: "ME", Timestamp: 42, Count: 13, StartAngle: -135, EndAngle: 135, StepAngle: 0.25, EchoCount: 1, Ranges: []int64{10, 20}}
	var buf bytes.Buffer
	if err := s.Dump(&buf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	want := "=====<ME:42>=====\nnum:13 start_a:-135 end_a:135 step_a:0.25 echo:1\n[10, 20]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}
