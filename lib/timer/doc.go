// Package timer provides a restartable countdown.
//
// A Timer is created with a fixed duration and is active until that duration
// has passed since it was created or last Reset. Callers can poll Active,
// block with Join/Begin (both honour a context) or range over Ticks to run
// code while waiting.
package timer
