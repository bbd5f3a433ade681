// Package rain implements the falling glyph simulation.
//
// A Simulation owns a Pool of live drops, a Ledger of recent position snapshots and the
// render.Grid they are composited into. Each Step advances every drop, records where
// the drops were before moving, retires drops that fell past the bottom, paints the
// decaying trail oldest first, paints live heads on top, tops the population back up
// and flushes the grid. All state is owned by the caller's loop goroutine.
package rain
