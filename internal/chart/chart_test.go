package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/table"
)

func TestMermaid(t *testing.T) {
	c := &Chart{
		Config: Config{Title: "病床使用率", YLabel: "率", Width: 800, Height: 300},
		Labels: []string{"2021-06-02", "2021-06-09", "2021-06-16"},
		Lines: []Line{
			{Name: "a", Values: []float64{0.5, math.NaN(), 0.25}},
			{Name: "b", Values: []float64{math.NaN(), 1, 2}},
		},
	}

	got := c.Mermaid()
	for _, want := range []string{
		"xychart-beta\n",
		"    width: 800\n",
		"    height: 300\n",
		`    title "病床使用率"` + "\n",
		`    x-axis ["2021-06-02", "2021-06-09", "2021-06-16"]` + "\n",
		`    y-axis "率" 0 --> 2.2` + "\n",
		"    %% a\n    line [0.5, 0.5, 0.25]\n",
		"    %% b\n    line [0, 1, 2]\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Mermaid() missing %q in:\n%s", want, got)
		}
	}
}

func TestMermaid_NoFrontMatterWithoutSize(t *testing.T) {
	c := &Chart{Labels: []string{"x"}, Lines: []Line{{Name: "a", Values: []float64{1}}}}
	if got := c.Mermaid(); !strings.HasPrefix(got, "xychart-beta\n") {
		t.Errorf("Mermaid() = %q, want no front matter", got)
	}
}

func TestMermaid_LogY(t *testing.T) {
	c := &Chart{
		Config: Config{LogY: true, YLabel: "人"},
		Labels: []string{"1", "2", "3"},
		Lines:  []Line{{Name: "a", Values: []float64{10, 0, 1000}}},
	}
	got := c.Mermaid()
	if !strings.Contains(got, `y-axis "人 (log10)" 1 --> 3.2`) {
		t.Errorf("log axis missing in:\n%s", got)
	}
	if !strings.Contains(got, "line [1, 1, 3]") {
		t.Errorf("zero should be a gap on a log axis:\n%s", got)
	}
}

func TestSampled(t *testing.T) {
	labels := make([]string, 365)
	for i := range labels {
		labels[i] = "d"
	}
	c := &Chart{Labels: labels}
	idx := c.sampled()
	if len(idx) > DefaultMaxPoints+1 {
		t.Errorf("sampled() kept %d points", len(idx))
	}
	if idx[0] != 0 || idx[len(idx)-1] != 364 {
		t.Errorf("sampled() = %v, want first and last kept", idx)
	}

	c.Config.MaxPoints = 400
	if got := len(c.sampled()); got != 365 {
		t.Errorf("sampled() with MaxPoints 400 kept %d, want 365", got)
	}
}

func TestEmpty(t *testing.T) {
	c := &Chart{Lines: []Line{{Values: []float64{math.NaN()}}}}
	if !c.Empty() {
		t.Error("Empty() = false for all-NaN chart")
	}
	c.Lines[0].Values = append(c.Lines[0].Values, 0)
	if c.Empty() {
		t.Error("Empty() = true with a zero point")
	}
	c.Config.LogY = true
	if !c.Empty() {
		t.Error("Empty() = false for zero on a log axis")
	}
}

func TestFromPivot(t *testing.T) {
	d1 := time.Date(2021, 6, 2, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 7)
	tbl := table.New()
	tbl.Add(table.Record{Entity: "東京都", Date: d1, Metric: "x", Value: 1})
	tbl.Add(table.Record{Entity: "東京都", Date: d2, Metric: "y", Value: 2})

	c := FromPivot(tbl.Pivot("東京都", []string{"x", "y"}), Config{Title: "t"})
	if len(c.Labels) != 2 || c.Labels[1] != "2021-06-09" {
		t.Errorf("Labels = %v", c.Labels)
	}
	if len(c.Lines) != 2 || c.Lines[1].Name != "y" || !math.IsNaN(c.Lines[1].Values[0]) {
		t.Errorf("Lines = %+v", c.Lines)
	}
}

func TestFromDayOfYear(t *testing.T) {
	c := FromDayOfYear(map[int][]float64{
		2021: make([]float64, 365),
		2020: make([]float64, 365),
	}, Config{})
	if len(c.Labels) != 365 || c.Labels[0] != "1" || c.Labels[364] != "365" {
		t.Errorf("Labels: %d, first %q", len(c.Labels), c.Labels[0])
	}
	if c.Lines[0].Name != "2020" || c.Lines[1].Name != "2021" {
		t.Errorf("lines not in year order: %s, %s", c.Lines[0].Name, c.Lines[1].Name)
	}
}

func TestWriteHTML(t *testing.T) {
	c := &Chart{
		Config: Config{Title: "入院率"},
		Labels: []string{"a"},
		Lines:  []Line{{Name: "入院率 <all>", Values: []float64{1}}},
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, "北海道", c); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<title>北海道</title>", `<pre class="mermaid">`, "xychart-beta", "入院率 &lt;all&gt;", MermaidScript} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteHTML() output missing %q", want)
		}
	}
}

func TestSaveHTML(t *testing.T) {
	var opened string
	orig := openFile
	openFile = func(path string) error {
		opened = path
		return nil
	}
	defer func() { openFile = orig }()

	c := &Chart{Labels: []string{"a"}, Lines: []Line{{Name: "n", Values: []float64{1}}}}
	path := filepath.Join(t.TempDir(), "chart.html")

	if err := SaveHTML(path, "t", false, c); err != nil {
		t.Fatalf("SaveHTML() error = %v", err)
	}
	if opened != "" {
		t.Error("SaveHTML() opened the browser without being asked")
	}
	if err := SaveHTML(path, "t", true, c); err != nil {
		t.Fatalf("SaveHTML() error = %v", err)
	}
	if opened != path {
		t.Errorf("opened %q, want %q", opened, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart file missing: %v", err)
	}
}
