package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnyUserName/trc/internal/transform"
)

// ErrMissingSrc is returned for job files without a source.
var ErrMissingSrc = errors.New("job has no src")

// Job is one job file: a media source and how to transform it. An inline
// Config wins over Preset; with neither, the run's default preset is used.
type Job struct {
	Src      string              `json:"src"`
	Preset   string              `json:"preset,omitempty"`
	Config   *transform.Envelope `json:"config,omitempty"`
	Widths   []int               `json:"widths,omitempty"`   // responsive widths, overrides the preset's
	MaxWidth int                 `json:"maxWidth,omitempty"` // caps variant widths, e.g. the source's width
}

func (j *Job) validate() error {
	if strings.TrimSpace(j.Src) == "" {
		return ErrMissingSrc
	}
	if j.MaxWidth < 0 {
		return fmt.Errorf("maxWidth must be >= 0, got %d", j.MaxWidth)
	}
	return nil
}

func (j *Job) inline() transform.Config {
	if j.Config == nil {
		return nil
	}
	return j.Config.Config
}
