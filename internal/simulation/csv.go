package simulation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pidwin/pidwin/internal/util"
)

var csvHeader = []string{"time", "uncontrolled", "controlled", "setPoint", "control", "controlBias", "forcing", "forcingMean"}

// MarshalCsv formats the series as CSV, one row per time step
func (s *Series) MarshalCsv() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	format := func(value float64) string {
		return strconv.FormatFloat(value, 'e', 6, 64)
	}
	for i := range s.Time {
		err := w.Write([]string{
			format(s.Time[i]),
			format(s.Uncontrolled[i]),
			format(s.Controlled[i]),
			format(s.SetPoint),
			format(s.Control[i]),
			format(s.ControlBias),
			format(s.Forcing[i]),
			format(s.ForcingMean),
		})
		if err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// WriteCsv writes one file per loop into dir and returns the written paths
func (r *Result) WriteCsv(dir string) ([]string, error) {
	var paths []string
	for i := range r.Series {
		series := &r.Series[i]
		data, err := series.MarshalCsv()
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", r.Id, series.LoopId))
		if err = util.WriteFileAtomic(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
