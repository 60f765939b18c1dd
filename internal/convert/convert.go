// Package convert moves date-time strings between timezones while keeping
// the host's date pattern intact.
package convert

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Kind int

const (
	ParseFailure Kind = iota + 1
	UnknownZone
)

func (k Kind) String() string {
	switch k {
	case ParseFailure:
		return "parse failure"
	case UnknownZone:
		return "unknown zone"
	default:
		return "unknown"
	}
}

// Error reports why a conversion could not be performed.
type Error struct {
	Kind  Kind
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Input, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a conversion error, or 0 for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Result is a converted date-time plus the target zone abbreviation.
// The zero Result means no conversion was performed.
type Result struct {
	Time         string
	Abbreviation string
}

func (r Result) IsEmpty() bool {
	return r.Time == ""
}

func (r Result) String() string {
	if r.IsEmpty() {
		return ""
	}
	return r.Time + " " + r.Abbreviation
}

// Converter parses dates in a source zone and formats them in any other
// zone, using one pattern for both. It holds no mutable state.
type Converter struct {
	pattern string
	layout  string
	source  *time.Location
}

func New(pattern string, source *time.Location) (*Converter, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return nil, err
	}
	if source == nil {
		source = time.Local
	}
	return &Converter{
		pattern: pattern,
		layout:  layout,
		source:  source,
	}, nil
}

func (c *Converter) Pattern() string {
	return c.pattern
}

func (c *Converter) Source() *time.Location {
	return c.source
}

// Format renders t in the source zone with the converter's pattern.
func (c *Converter) Format(t time.Time) string {
	return t.In(c.source).Format(c.layout)
}

// Convert reads raw in the source zone and renders the same instant in
// targetID. The abbreviation is the one in effect at that instant.
func (c *Converter) Convert(raw, targetID string) (Result, error) {
	t, err := time.ParseInLocation(c.layout, raw, c.source)
	if err != nil {
		return Result{}, &Error{Kind: ParseFailure, Input: raw, Err: err}
	}

	if targetID == "" {
		return Result{}, &Error{Kind: UnknownZone, Input: targetID, Err: errors.New("no timezone given")}
	}
	target, err := time.LoadLocation(targetID)
	if err != nil {
		return Result{}, &Error{Kind: UnknownZone, Input: targetID, Err: err}
	}

	local := t.In(target)
	abbr, _ := local.Zone()
	return Result{
		Time:         local.Format(c.layout),
		Abbreviation: abbr,
	}, nil
}

// ConvertOrEmpty is Convert with failures logged and replaced by the
// empty Result.
func (c *Converter) ConvertOrEmpty(raw, targetID string) Result {
	log.Debug().Str("date", raw).Str("timezone", targetID).Msg("Received date")

	res, err := c.Convert(raw, targetID)
	if err == nil {
		return res
	}

	switch KindOf(err) {
	case UnknownZone:
		log.Warn().Err(err).Str("timezone", targetID).Msg("Unable to resolve timezone")
	default:
		log.Error().Err(err).Str("date", raw).Str("pattern", c.pattern).Msg("Unable to convert date")
	}
	return Result{}
}

// Convert is a one-shot conversion. A pattern that cannot be used is
// reported as a ParseFailure.
func Convert(raw, pattern, targetID string, source *time.Location) (Result, error) {
	c, err := New(pattern, source)
	if err != nil {
		return Result{}, &Error{Kind: ParseFailure, Input: raw, Err: err}
	}
	return c.Convert(raw, targetID)
}
