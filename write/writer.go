// Package write records optimizer progress, one line per iteration.
package write

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type WriteSettings struct {
	DisplayWriters []Writer // Where progress is written. nil disables all output

	// DisplayInterval is the minimum time between two lines on a Displayer.
	// Zero displays every iteration.
	DisplayInterval time.Duration
}

func DefaultWriteSettings() *WriteSettings {
	return &WriteSettings{
		DisplayInterval: 500 * time.Millisecond,
	}
}

type Type int

const (
	// Logger saves every iteration as a CSV record for postprocessing.
	Logger Type = iota

	// Displayer is intended for human monitoring. Lines are throttled by
	// DisplayInterval and columns are aligned.
	Displayer
)

type Writer struct {
	io.Writer
	T Type
}

type Value struct {
	Value   interface{}
	Heading string
}

// DataAdder contributes columns to every line.
type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

// headings are repeated on a Displayer after this many value lines.
const headingInterval = 30

// Display writes the values of its DataAdders to a set of Writers.
// Headings are fixed at Init.
type Display struct {
	dataAdders []DataAdder
	values     []*Value

	headings []string
	strs     []string
	widths   []int

	writers  []Writer
	csvs     []*csv.Writer
	interval time.Duration

	lastDisplay       time.Time
	linesSinceHeading int
	pending           bool
}

func NewDisplay() *Display {
	return &Display{}
}

// AddDataAdder adds columns. It should only be called before Init.
func (d *Display) AddDataAdder(dataAdders ...DataAdder) {
	d.dataAdders = append(d.dataAdders, dataAdders...)
}

func (d *Display) accumulate() {
	d.values = d.values[:0]
	for _, a := range d.dataAdders {
		d.values = a.AppendWriteData(d.values)
	}
	d.strs = d.strs[:0]
	for _, v := range d.values {
		d.strs = append(d.strs, valueToString(v.Value))
	}
}

// Init writes the headers to every writer.
func (d *Display) Init(s *WriteSettings) error {
	d.writers = s.DisplayWriters
	d.interval = s.DisplayInterval
	d.csvs = d.csvs[:0]
	d.lastDisplay = time.Time{}
	d.linesSinceHeading = headingInterval
	d.pending = false

	if len(d.writers) == 0 {
		return nil
	}
	d.accumulate()
	d.headings = d.headings[:0]
	for _, v := range d.values {
		d.headings = append(d.headings, v.Heading)
	}

	for _, w := range d.writers {
		var cw *csv.Writer
		switch w.T {
		default:
			return errors.Errorf("write: unknown writer type %d", w.T)
		case Logger:
			cw = csv.NewWriter(w)
			if err := writeRecord(cw, d.headings); err != nil {
				return err
			}
		case Displayer:
			if _, err := io.WriteString(w, "Beginning Optimization\n"); err != nil {
				return err
			}
		}
		d.csvs = append(d.csvs, cw)
	}
	return nil
}

// Iterate records the current values. Loggers get every iteration,
// Displayers only when DisplayInterval has elapsed.
func (d *Display) Iterate() error {
	if len(d.writers) == 0 {
		return nil
	}
	d.accumulate()
	d.pending = true

	for i, w := range d.writers {
		if w.T != Logger {
			continue
		}
		if err := writeRecord(d.csvs[i], d.strs); err != nil {
			return err
		}
	}
	if time.Since(d.lastDisplay) < d.interval {
		return nil
	}
	return d.display()
}

// Finish displays the last values if throttling skipped them.
func (d *Display) Finish() error {
	if !d.pending {
		return nil
	}
	return d.display()
}

func (d *Display) display() error {
	d.pending = false
	d.lastDisplay = time.Now()

	showHeadings := d.linesSinceHeading >= headingInterval
	if showHeadings {
		d.linesSinceHeading = 0
	}
	d.linesSinceHeading++

	d.widths = d.widths[:0]
	for i, s := range d.strs {
		d.widths = append(d.widths, len(s))
		if len(d.headings[i]) > len(s) {
			d.widths[i] = len(d.headings[i])
		}
	}
	for _, w := range d.writers {
		if w.T != Displayer {
			continue
		}
		if showHeadings {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if err := writeAligned(w, d.headings, d.widths); err != nil {
				return err
			}
		}
		if err := writeAligned(w, d.strs, d.widths); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w *csv.Writer, record []string) error {
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeAligned(w io.Writer, strs []string, widths []int) error {
	var b strings.Builder
	for i, s := range strs {
		b.WriteString(s)
		b.WriteString(strings.Repeat(" ", widths[i]-len(s)))
		b.WriteByte('\t')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func valueToString(v interface{}) string {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'e', 6, 64)
	case []float64:
		return fmt.Sprintf("%.6e", v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
