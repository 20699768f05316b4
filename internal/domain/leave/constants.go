package leave

const CollectionKey = "leaveRequests"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	TypeAnnual    = "Annual Leave"
	TypeSick      = "Sick Leave"
	TypePersonal  = "Personal Leave"
	TypeMaternity = "Maternity Leave"
	TypeUnpaid    = "Unpaid Leave"
)

var Types = []string{TypeAnnual, TypeSick, TypePersonal, TypeMaternity, TypeUnpaid}

const dateLayout = "2006-01-02"
