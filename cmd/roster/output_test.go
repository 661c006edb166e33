package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/matsen/roster/internal/record"
)

func TestToRecordResponses(t *testing.T) {
	r, err := record.ParseLine("7,Alice,2020-01-31,Tokyo,a, b")
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}

	got := toRecordResponses([]record.Record{r})
	want := RecordResponse{ID: 7, Name: "Alice", Date: "2020-01-31", Address: "Tokyo", Note: "a, b"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("toRecordResponses() = %+v, want [%+v]", got, want)
	}
}

func TestToRecordResponses_EmptyEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(toRecordResponses(nil))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Marshal() = %s, want []", data)
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("unknown directive \"%Z\""))

	out := buf.String()
	if !strings.Contains(out, "Error:") {
		t.Errorf("output = %q, want Error: label", out)
	}
	if !strings.HasSuffix(out, " unknown directive \"%Z\"\n") {
		t.Errorf("output = %q, want message on one line", out)
	}
}
