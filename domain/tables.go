package domain

// Table is the name of a mongo collection
type Table string

const (
	TableUsers            Table = "users"
	TableUserBalances     Table = "user_balances"
	TableChainCursors     Table = "chain_cursors"
	TableBalanceSnapshots Table = "balance_snapshots"
	TableDeposits         Table = "deposits"
	TableScanRuns         Table = "scan_runs"
)
