package pstore

import (
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Process wide store metrics
var (
	writesTotal       = metrics.NewCounter(`pdict_writes_total`)
	writeErrorsTotal  = metrics.NewCounter(`pdict_write_errors_total`)
	writtenBytesTotal = metrics.NewCounter(`pdict_written_bytes_total`)
	writeDuration     = metrics.NewHistogram(`pdict_write_duration_seconds`)
	loadsTotal        = metrics.NewCounter(`pdict_loads_total`)
	loadErrorsTotal   = metrics.NewCounter(`pdict_load_errors_total`)
	openStores        = metrics.NewCounter(`pdict_open_stores`)
)

// observeWrite records the outcome of one backing file write.
func observeWrite(start time.Time, size int, err error) {
	if err != nil {
		writeErrorsTotal.Inc()
		return
	}
	writesTotal.Inc()
	writtenBytesTotal.Add(size)
	writeDuration.Update(time.Since(start).Seconds())
}

// observeLoad records the outcome of loading a backing file.
func observeLoad(err error) {
	if err != nil {
		loadErrorsTotal.Inc()
		return
	}
	loadsTotal.Inc()
}

// WriteMetrics writes all store metrics of this process in Prometheus text format to w.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
