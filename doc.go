// Package taxfolio computes realized trading profit from brokerage trade
// exports, for yearly tax reporting.
//
// The input is a time-ordered stream of executed stock and option trades,
// one CSV file per brokerage platform. The engine folds the stream through a
// position book under one of two lot-matching conventions:
//
//   - AverageCostOffset: every fill that opposes the current position's sign
//     closes it up to the overlap, realizing profit against the average cost;
//     the remainder reopens a position at the fill price. Shorts are first
//     class citizens.
//   - MovingAverage: buys blend into a single weighted average cost with fees
//     folded into the basis; sells realize profit against the pre-sell
//     average cost, capped at the held quantity.
//
// Realized-profit records are buffered per calendar year and flushed on each
// year transition into per-year, per-currency summaries, persisted as CSV
// files. The moving-average variant additionally snapshots start and
// end-of-year holdings. A separate report pass aggregates all per-year files
// into a year by currency profit table.
//
// This package holds the engine and the file codecs; the `tpf` command-line
// tool drives it.
package taxfolio
