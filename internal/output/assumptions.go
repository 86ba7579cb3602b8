package output

// DefaultAssumptions lists key modeling assumptions rendered when a comparison carries none.
var DefaultAssumptions = []string{
	"Returns compound monthly at one twelfth of the annual rate",
	"Contribution limits grow by a fixed dollar amount each year",
	"RMDs use the IRS Uniform Lifetime Table and the prior year-end tax-deferred balance",
	"Tax-deferred withdrawals before age 59.5 incur the early withdrawal penalty",
}
