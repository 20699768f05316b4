package payroll

const CollectionKey = "payrollData"

const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusPaid       = "Paid"
)

var Statuses = []string{StatusPending, StatusProcessing, StatusPaid}

const dateLayout = "2006-01-02"
