package models

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "ANNUAL"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeUnpaid LeaveType = "UNPAID"
)

var leaveTypeHumanName = map[LeaveType]string{
	LeaveTypeAnnual: "Ежегодный отпуск",
	LeaveTypeSick:   "Больничный",
	LeaveTypeUnpaid: "Отпуск без содержания",
}

func (t LeaveType) ToHuman() string {
	if human, exist := leaveTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t LeaveType) IsValid() bool {
	_, exist := leaveTypeHumanName[t]
	return exist
}

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

var leaveStatusHumanName = map[LeaveStatus]string{
	LeaveStatusPending:   "На рассмотрении",
	LeaveStatusApproved:  "Согласована",
	LeaveStatusRejected:  "Отклонена",
	LeaveStatusCancelled: "Отменена",
}

func (s LeaveStatus) ToHuman() string {
	if human, exist := leaveStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s LeaveStatus) IsValid() bool {
	_, exist := leaveStatusHumanName[s]
	return exist
}
