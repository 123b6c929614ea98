// Package param is the misc-glue collaborator spec.md §1/§3 names:
// normalized-to-plain parameter conversion and audio-thread-safe
// smoothing, shared by any node the registry constructs (spec §4.9).
package param

import (
	"fmt"
	"strconv"

	"github.com/justyntemme/rtaudio/pkg/atomicx"
)

// Flags for a parameter's automation/visibility behavior.
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsList      uint32 = 1 << 2
	IsHidden    uint32 = 1 << 3
)

// Parameter is a single control value, stored normalized (0-1) in an
// atomic so the control thread can write it while the audio thread
// reads it every block without contending a lock.
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64
	StepCount    int32
	Flags        uint32

	value atomicx.Double

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// New creates a parameter over [min,max], initialized to defaultValue.
func New(id uint32, name string, min, max, defaultValue float64) *Parameter {
	p := &Parameter{
		ID:           id,
		Name:         name,
		Min:          min,
		Max:          max,
		DefaultValue: defaultValue,
	}
	p.value.Store(p.Normalize(defaultValue))
	return p
}

// SetFormatter attaches custom plain-value formatting/parsing.
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// GetValue returns the current normalized value (0-1). Safe to call
// from the audio thread.
func (p *Parameter) GetValue() float64 {
	return p.value.Load()
}

// SetValue sets the normalized value (0-1), clamped. Safe to call from
// the audio thread, though in practice only the control thread writes.
func (p *Parameter) SetValue(value float64) {
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	p.value.Store(value)
}

// GetPlainValue converts the stored normalized value to plain units.
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts a plain-unit value to normalized and stores it.
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Normalize converts a plain value to normalized (0-1), clamped.
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	n := (plain - p.Min) / (p.Max - p.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// Denormalize converts a normalized (0-1) value to plain units.
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + normalized*(p.Max-p.Min)
}

// FormatValue renders a normalized value as a display string.
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a display string back to a normalized value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.Normalize(plain), nil
	}
	plain, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return p.Normalize(plain), nil
}
