package appcore

import (
	"io"

	"popstats/internal/engine"
	"popstats/internal/output"
	"popstats/internal/writers"
)

// WriterFactory starts the report writer goroutine.
type WriterFactory interface {
	Extension() string
	Start(out io.Writer, bufSize int) (chan<- engine.Result, <-chan error)
}

// ReportWriterFactory starts the writer registered for Format.
type ReportWriterFactory struct {
	Format string
	Info   output.RunInfo
}

func NewReportWriterFactory(format string, info output.RunInfo) ReportWriterFactory {
	return ReportWriterFactory{Format: format, Info: info}
}

func (w ReportWriterFactory) Extension() string { return output.Extension(w.Format) }

func (w ReportWriterFactory) Start(out io.Writer, bufSize int) (chan<- engine.Result, <-chan error) {
	return writers.Start(w.Format, out, w.Info, bufSize)
}
