package notifications

const (
	TypeEmployeeAdded    = "employee_added"
	TypeLeaveSubmitted   = "leave_submitted"
	TypeLeaveApproved    = "leave_approved"
	TypeLeaveRejected    = "leave_rejected"
	TypeReviewRecorded   = "review_recorded"
	TypePayrollProcessed = "payroll_processed"
	TypeFeedbackReceived = "feedback_received"
)
