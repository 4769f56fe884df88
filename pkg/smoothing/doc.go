/*
Package smoothing provides the time-series smoothing primitives used
by the forecast module: simple moving average, weighted moving average
and single exponential smoothing.

All three are pure functions. The same input sequence and parameters
always produce the same output sequence, the output always has the
same length as the input, and no state is carried between calls. The
moving-average variants use a window that shrinks at the start of the
series, so the leading points average whatever prefix is available
rather than being dropped.
*/
package smoothing
