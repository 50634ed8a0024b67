package models

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)

// Category output files
const (
	FileTransactions = "transactions.csv"
	FileDividends    = "dividends.csv"
	FileInterest     = "interest.csv"
	FileOrders       = "orders.csv"
)
