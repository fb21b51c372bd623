package dbmodels

type Attachment struct {
	BaseModel
	LeaveRequestID string `gorm:"type:varchar(36);index:idx_attachment_leave_request"`
	FileName       string `gorm:"type:varchar(255)"`
	ObjectKey      string `gorm:"type:varchar(255)"`
	ContentType    string `gorm:"type:varchar(100)"`
	FileSize       int64
}
