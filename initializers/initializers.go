package initializers

import (
	"context"

	"hrm-backend/config"
	"hrm-backend/fiberlog"
	attendancehandler "hrm-backend/lib/attendance"
	authhandler "hrm-backend/lib/auth"
	departmentprovider "hrm-backend/lib/dicts/department"
	employeehandler "hrm-backend/lib/employee"
	xlsexport "hrm-backend/lib/export/xls"
	filestorage "hrm-backend/lib/file-storage"
	leavehandler "hrm-backend/lib/leave"
	notifyhandler "hrm-backend/lib/notify"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	s3Client := InitS3(ctx)

	notifyhandler.NewHandler(config.Conf.Smtp.From)
	xlsexport.NewHandler()
	departmentprovider.NewHandler()
	employeehandler.NewHandler()
	attendancehandler.NewHandler()
	leavehandler.NewHandler()
	authhandler.NewHandler()
	filestorage.NewHandler(s3Client)
}
