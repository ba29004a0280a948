package braille

import (
	"sync/atomic"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
)

var loggerPtr atomic.Pointer[log.Interface]

func init() {
	SetLogger(nil)
}

func newNopLogger() log.Interface {
	return &log.Logger{
		Handler: discard.New(),
		Level:   log.FatalLevel,
	}
}

// SetLogger configures the logger used by the conversion pipeline.
// By default nothing is logged; pass nil to restore that.
//
// The pipeline logs at debug level only: source size, quantized raster size,
// parameters, line counts and timings.
func SetLogger(l log.Interface) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(&l)
}

// Logger returns the current pipeline logger
func Logger() log.Interface {
	return *loggerPtr.Load()
}
