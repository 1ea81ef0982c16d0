// Package combination picks which diesel-electric generators run for a given electrical
// demand and how the load is split between them.
//
// Everything here is a pure function of its inputs and the fitted SFOC curves, so an
// Optimizer may be shared by any number of goroutines.
package combination
