package util

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

var tables = []Table{
	{
		Title:      "Fitted parameters",
		RowHeaders: []string{"I0", "R"},
		ColHeaders: []string{"value", "error"},
		Data: [][]float64{
			{10.0, 0.12},
			{0.5, 0.03},
		},
	},
	{
		Title:      "Decay curve",
		RowHeaders: []string{"t=0", "t=1", "t=2"},
		ColHeaders: []string{"observed", "back calculated"},
		Data: [][]float64{
			{10.0, 10.0},
			{6.07, 6.0653},
			{3.68, 3.6788},
		},
	},
}

func TestReportHTML(t *testing.T) {
	var b bytes.Buffer
	if err := writeReportHTML(tables, &b); err != nil {
		t.Fatalf("error writing html %q", err)
	}

	out := b.String()
	for _, want := range []string{"Fitted parameters", "Decay curve", "back calculated"} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q", want)
		}
	}
}

func TestReportSanityCheck(t *testing.T) {
	bad := []Table{{
		Title:      "bad",
		RowHeaders: []string{"only one"},
		ColHeaders: []string{"c"},
		Data:       [][]float64{{1}, {2}},
	}}

	var b bytes.Buffer
	if err := writeReportHTML(bad, &b); err == nil {
		t.Error("expected row count mismatch to be rejected")
	}
}

func TestReportFile(t *testing.T) {
	fileName := "testReport.html"
	defer os.Remove(fileName)

	if err := WriteReportFile(tables, fileName); err != nil {
		t.Fatal(err)
	}

	stat, err := os.Stat(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if stat.Size() == 0 {
		t.Fatal("no text written")
	} else if testing.Verbose() {
		t.Logf("Generated File is %v Bytes", stat.Size())
	}
}
