// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Column names and per-node suffixes of the survey layout.
const (
	ColSampleID          = "sample_id"
	ColTotalInflow       = "TotalEntrada"
	ColTotalDistribution = "TotalDistribucion"

	SuffixFlow     = "_caudal"
	SuffixLoss     = "_perdida"
	SuffixVolume   = "_volumen"
	SuffixPressure = "_presion"
)

var suffixes = [...]string{SuffixFlow, SuffixLoss, SuffixVolume, SuffixPressure}

// Header returns the column set for nodeIDs in write order.
func Header(nodeIDs []string) []string {
	h := make([]string, 0, 3+4*len(nodeIDs))
	h = append(h, ColSampleID)
	for _, id := range nodeIDs {
		for _, s := range suffixes {
			h = append(h, id+s)
		}
	}

	return append(h, ColTotalInflow, ColTotalDistribution)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes d with a header row. NaN volumes become empty cells.
func WriteCSV(w io.Writer, d Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(d.NodeIDs)); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	row := make([]string, 0, 3+4*len(d.NodeIDs))
	for _, s := range d.Samples {
		if len(s.Readings) != len(d.NodeIDs) {
			return fmt.Errorf("WriteCSV: sample %d: %w", s.ID, ErrNodeMismatch)
		}
		row = append(row[:0], strconv.Itoa(s.ID))
		for _, r := range s.Readings {
			row = append(row, formatFloat(r.Flow), formatFloat(r.Loss), formatFloat(r.Volume), formatFloat(r.Pressure))
		}
		row = append(row, formatFloat(s.TotalInflow), formatFloat(s.TotalDistribution))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}

	return nil
}

// WriteFile creates path and writes d to it.
func WriteFile(path string, d Dataset) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteCSV(fh, d)
}

// ReadCSV reads a dataset recorded over nodeIDs. Columns are located by
// name; extra columns are ignored. An empty volume cell reads as NaN. Any
// other empty cell, a NaN or Inf literal, or a non-integer sample_id is
// ErrNotNumeric.
func ReadCSV(r io.Reader, nodeIDs []string) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, fmt.Errorf("ReadCSV: %w", ErrEmpty)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("ReadCSV: %w: %w", ErrData, err)
	}
	pos := make(map[string]int, len(head))
	for i, name := range head {
		pos[name] = i
	}
	want := Header(nodeIDs)
	cols := make([]int, len(want))
	for k, name := range want {
		i, ok := pos[name]
		if !ok {
			return Dataset{}, fmt.Errorf("ReadCSV: %q: %w", name, ErrMissingColumn)
		}
		cols[k] = i
	}

	d := Dataset{NodeIDs: append([]string(nil), nodeIDs...)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("ReadCSV: line %d: %w: %w", line, ErrData, err)
		}
		s, err := parseRow(rec, want, cols, len(nodeIDs))
		if err != nil {
			return Dataset{}, fmt.Errorf("ReadCSV: line %d: %w", line, err)
		}
		d.Samples = append(d.Samples, s)
	}

	return d, nil
}

// ReadFile opens path and calls ReadCSV.
func ReadFile(path string, nodeIDs []string) (Dataset, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer fh.Close()

	return ReadCSV(fh, nodeIDs)
}

func parseRow(rec, names []string, cols []int, n int) (Sample, error) {
	num := func(k int) (float64, error) {
		cell := rec[cols[k]]
		if cell == "" && k > 0 && k <= 4*n && (k-1)%4 == 2 {
			return math.NaN(), nil
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%s=%q: %w", names[k], cell, ErrNotNumeric)
		}

		return v, nil
	}

	var s Sample
	id, err := strconv.Atoi(rec[cols[0]])
	if err != nil {
		return Sample{}, fmt.Errorf("%s=%q: %w", names[0], rec[cols[0]], ErrNotNumeric)
	}
	s.ID = id
	s.Readings = make([]Reading, n)
	vals := [4]float64{}
	for i := 0; i < n; i++ {
		for j := range vals {
			if vals[j], err = num(1 + 4*i + j); err != nil {
				return Sample{}, err
			}
		}
		s.Readings[i] = Reading{Flow: vals[0], Loss: vals[1], Volume: vals[2], Pressure: vals[3]}
	}
	if s.TotalInflow, err = num(1 + 4*n); err != nil {
		return Sample{}, err
	}
	if s.TotalDistribution, err = num(2 + 4*n); err != nil {
		return Sample{}, err
	}

	return s, nil
}
