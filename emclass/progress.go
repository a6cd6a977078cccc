package emclass

// Sink is the minimal progress callback of spec.md §4.7. The engine
// does not know the total number of iterations a caller intends to run;
// the caller composes Sink with its own iteration limit (see the
// progress package for the console implementation).
type Sink interface {
	Notify(iteration int)
}

// noopSink is used when no Sink is supplied to New/NewWarmStart.
type noopSink struct{}

func (noopSink) Notify(int) {}
