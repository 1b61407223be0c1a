// Package pqharmonics extracts harmonic measurement tables from
// power-quality analyzer PDF reports, validates them and reports limit
// violations.
package pqharmonics

import (
	"time"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/parser"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

// Mode represents the validation mode.
type Mode string

const (
	// ModeStrict drops rows with any non-numeric measured value.
	ModeStrict Mode = "strict"
	// ModeDisplay keeps non-numeric measured values verbatim.
	ModeDisplay Mode = "display"
)

func (m Mode) parser() parser.Mode {
	if m == ModeDisplay {
		return parser.Display
	}
	return parser.Strict
}

// Defaults applied to zero Options fields.
const (
	DefaultWorkers         = 4
	DefaultDocumentTimeout = 2 * time.Minute
)

// Options configures processing behavior.
type Options struct {
	// Config is the extraction configuration. If nil, config.Default() is used.
	Config *config.Config
	// Workers bounds the documents processed concurrently by ProcessBatch.
	Workers int
	// DocumentTimeout bounds the processing time of one batch document.
	DocumentTimeout time.Duration
	// TableParams tunes candidate table detection on PDF pages.
	// If nil, source.DefaultTableParams() is used.
	TableParams *source.TableDetectionParams
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		Config:          config.Default(),
		Workers:         DefaultWorkers,
		DocumentTimeout: DefaultDocumentTimeout,
	}
}

// ConfigOrDefault returns the configured extraction config.
func (o Options) ConfigOrDefault() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Default()
}

// WorkerCount returns the batch concurrency.
func (o Options) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return DefaultWorkers
}

// Timeout returns the per-document budget of a batch.
func (o Options) Timeout() time.Duration {
	if o.DocumentTimeout > 0 {
		return o.DocumentTimeout
	}
	return DefaultDocumentTimeout
}

func (o Options) tableParams() source.TableDetectionParams {
	if o.TableParams != nil {
		return *o.TableParams
	}
	return source.DefaultTableParams()
}
