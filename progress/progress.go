// Package progress implements a console progress bar and an
// emclass.Sink adapter around it (spec.md §4.7), grounded on
// original_source/src/GUI/ConsoleProgressBar/ConsoleProgressBar.hpp.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("progress")

// Bar renders a bracketed progress bar to a stream, the same shape as
// ConsoleProgressBar: "prefix : progress [===.......] 30.00 %".
type Bar struct {
	stream  io.Writer
	repeats int
	size    int
	prefix  string
	current int
}

// NewBar constructs a Bar that reaches 100% after repeats calls to
// Update.
func NewBar(stream io.Writer, repeats, size int, prefix string) *Bar {
	return &Bar{stream: stream, repeats: repeats, size: size, prefix: prefix}
}

// Display writes the bar's current state without advancing it.
func (b *Bar) Display() {
	fraction := 0.0
	if b.repeats > 0 {
		fraction = float64(b.current) / float64(b.repeats)
	}
	filled := int(fraction * float64(b.size))
	if filled > b.size {
		filled = b.size
	}
	bar := strings.Repeat("=", filled) + strings.Repeat(".", b.size-filled)
	fmt.Fprintf(b.stream, "\r%s : progress [%s] %.2f %%", b.prefix, bar, fraction*100)
}

// Update advances the bar by one step and displays it.
func (b *Bar) Update() {
	b.current++
	b.Display()
}

// Fill advances the bar straight to 100% and displays it, followed by a
// newline so subsequent output starts on a fresh line.
func (b *Bar) Fill() {
	b.current = b.repeats
	b.Display()
	fmt.Fprintln(b.stream)
}

// Sink adapts a Bar to the emclass.Sink interface, additionally emitting
// a debug log line on every iteration and a finishing newline once the
// configured iteration budget is reached.
type Sink struct {
	bar    *Bar
	budget int
}

// NewSink returns a Sink that drives bar and logs against budget, the
// caller's intended number of EM iterations.
func NewSink(bar *Bar, budget int) *Sink {
	return &Sink{bar: bar, budget: budget}
}

// Notify implements emclass.Sink.
func (s *Sink) Notify(iteration int) {
	s.bar.Update()
	log.Debugf("iteration %d/%d complete", iteration, s.budget)
	if iteration >= s.budget {
		fmt.Fprintln(s.bar.stream)
	}
}
