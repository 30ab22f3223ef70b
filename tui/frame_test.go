package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameStringComparable(t *testing.T) {
	a := Frame{IP: "1.2.3.4", Place: "X, Y, Z", Interval: "60 seconds", Rows: []string{"##  ", " X  "}}
	b := Frame{IP: "1.2.3.4", Place: "X, Y, Z", Interval: "60 seconds", Rows: []string{"##  ", " X  "}}
	c := Frame{IP: "5.6.7.8", Place: "X, Y, Z", Interval: "60 seconds", Rows: []string{"##  ", " X  "}}

	assert.Equal(t, a.String(), b.String(), "identical frames compare equal")
	assert.NotEqual(t, a.String(), c.String(), "an address change must change the frame text")

	d := a
	d.Rows = []string{"##  ", "  X "}
	assert.NotEqual(t, a.String(), d.String(), "a marker move must change the frame text")
}

func TestFrameStringLayout(t *testing.T) {
	f := Frame{IP: "1.2.3.4", Place: "X, Y, Z", Interval: "60 seconds", Rows: []string{"row"}}
	text := f.String()
	assert.True(t, strings.HasPrefix(text, "External IP: 1.2.3.4 -- Location: X, Y, Z"))
	assert.Contains(t, text, "\nrow\n")
}
