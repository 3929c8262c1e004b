// Package report holds the pure computations behind the financial summary:
// resolving the comparison windows, aggregating transaction rows, percentage
// changes, category ranking and the gap-filled daily series.
//
// Nothing here touches storage. Amounts stay in domain.Milliunits so sums are
// exact; conversion to display units happens at the HTTP edge.
//
// The SQL repositories aggregate inside the database. AggregatePeriod,
// SumExpensesByCategory and SumByDay fold plain rows the same way and back the
// in-memory repository in testutil, which keeps it in step with the queries.
package report
