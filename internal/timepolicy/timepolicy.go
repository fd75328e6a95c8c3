/*
Copyright (c) 2023 Purple Clay

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package timepolicy parses a fixed timezone specification and converts
// Unix timestamps into proleptic Gregorian calendar dates and julian day
// numbers, without ever consulting host local time.
package timepolicy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Policy is a parsed, fixed timezone specification
type Policy struct {
	offset time.Duration
	spec   string
}

// UTC is the default policy
var UTC = Policy{offset: 0, spec: "UTC"}

// Parse recognizes either the literal "UTC" or a fixed offset of the
// form ±HH:MM with HH in [0,14] and MM in [0,59]. Surrounding whitespace
// is ignored, and an empty spec (an unset option) yields UTC. Host local
// time is never consulted. An error is returned if spec matches neither
// form
func Parse(spec string) (Policy, error) {
	trimmed := strings.TrimSpace(spec)

	if trimmed == "" || trimmed == "UTC" {
		return UTC, nil
	}

	offset, err := parseOffset(trimmed)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid timezone %q: %w", spec, err)
	}

	return Policy{offset: offset, spec: trimmed}, nil
}

func parseOffset(spec string) (time.Duration, error) {
	if len(spec) != 6 || (spec[0] != '+' && spec[0] != '-') || spec[3] != ':' {
		return 0, fmt.Errorf("expected ±HH:MM")
	}

	hh, err := strconv.Atoi(spec[1:3])
	if err != nil {
		return 0, fmt.Errorf("invalid hour component: %w", err)
	}
	if hh < 0 || hh > 14 {
		return 0, fmt.Errorf("hour component %d out of range [0,14]", hh)
	}

	mm, err := strconv.Atoi(spec[4:6])
	if err != nil {
		return 0, fmt.Errorf("invalid minute component: %w", err)
	}
	if mm < 0 || mm > 59 {
		return 0, fmt.Errorf("minute component %d out of range [0,59]", mm)
	}

	total := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
	if spec[0] == '-' {
		total = -total
	}

	return total, nil
}

// String returns the original (trimmed) specification the policy was
// parsed from
func (p Policy) String() string {
	return p.spec
}

// Date is a proleptic Gregorian calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateOf returns the calendar date of t, shifted by the policy's offset.
// Host local time is never consulted; the shift is applied to the Unix
// timestamp directly
func (p Policy) DateOf(t int64) Date {
	shifted := time.Unix(t, 0).UTC().Add(p.offset)
	y, m, d := shifted.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// JulianDay returns the integer day number of d, using the standard
// astronomical julian day number algorithm. It is not itself a
// timestamp; only differences between two JulianDay values are
// meaningful
func (d Date) JulianDay() int64 {
	a := (14 - d.Month) / 12
	y := d.Year + 4800 - a
	m := d.Month + 12*a - 3

	jdn := int64(d.Day) +
		int64((153*m+2)/5) +
		int64(365*y) +
		int64(y/4) -
		int64(y/100) +
		int64(y/400) -
		32045

	return jdn
}

// DayDelta returns the integer difference in calendar days, in the
// configured timezone, between anchorTS and targetTS:
// julian_day(target) − julian_day(anchor)
func (p Policy) DayDelta(anchorTS, targetTS int64) int64 {
	return p.DateOf(targetTS).JulianDay() - p.DateOf(anchorTS).JulianDay()
}
