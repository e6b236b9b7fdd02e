/*Package interval implements operations on closed 1-based genomic
  intervals: pairwise distance under two measuring modes, coverage unions,
  and span envelopes.
  (Note that Union reports merged coverage. Overlapping intervals are
  collapsed, not tracked separately.)
*/
package interval
