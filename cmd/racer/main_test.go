package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"racer/internal/records"
)

func TestPrintRecords(t *testing.T) {
	tbl := records.NewTable()
	tbl["2"] = []float64{41.456, 39.2}

	var buf bytes.Buffer
	printRecords(&buf, tbl, false)
	out := buf.String()

	assert.Contains(t, out, "Track 1\n  no records\n")
	assert.Contains(t, out, "Track 2\n    1  41.46\n    2  39.20\n  best 39.20\n")
	assert.Equal(t, 6, strings.Count(out, "Track "))
}

func TestPrintRecordsSorted(t *testing.T) {
	tbl := records.NewTable()
	tbl["5"] = []float64{30, 20, 25}

	var buf bytes.Buffer
	printRecords(&buf, tbl, true)

	assert.Contains(t, buf.String(), "Track 5\n    2  20.00\n    3  25.00\n    1  30.00\n  best 20.00\n")
}
