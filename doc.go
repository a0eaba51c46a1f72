// Package taxlot provides a tax-lot cost-basis accounting engine for a
// personal investment tracker. It is designed to be local-first, auditable,
// and deterministic, ensuring users have full control and transparency over
// their cost-basis history.
//
// The core functionalities include:
//   - Lot Book: an insertion-ordered ledger of lots per (account, symbol),
//     where each lot records one discrete acquisition with its cost basis,
//     remaining quantity, and full adjustment and sale-allocation history.
//   - Lot Factory: creating lots from ordered acquisition transactions, or
//     bootstrapping them from a holdings snapshot when no history exists.
//   - Allocation Engine: applying a disposal against open lots under a
//     caller-selected method (FIFO, LIFO, average-cost, specific-id) with a
//     deterministic, auditable breakdown.
//   - Corporate-Action Adjuster: rescaling lot quantities and prices for
//     splits and reverse splits without changing aggregate cost.
//   - Gain Engine: pure read-only functions deriving unrealized gain/loss
//     and weighted-average cost from a lot set.
//   - Data Persistence: encoding and decoding transactions and lot books
//     to and from human-readable, version-controllable JSONL.
//
// The engine performs no I/O and holds no global state. All arithmetic is
// decimal, so identical inputs always produce identical outputs. Callers own
// the serialization of each read-modify-write sequence per (account, symbol).
//
// This package serves as the foundational logic for the `lots` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package taxlot
