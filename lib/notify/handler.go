package notifyhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hrm-backend/lib/smtp"
	"hrm-backend/models"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	LeaveDecision(employee dbmodels.Employee, rec dbmodels.LeaveRequest)
}

var Instance Provider

func NewHandler(from string) {
	Instance = impl{
		from: from,
	}
}

type impl struct {
	from string
}

// LeaveDecision отправляет сотруднику письмо о решении по заявке.
// Ошибка отправки логируется и не прерывает операцию.
func (i impl) LeaveDecision(employee dbmodels.Employee, rec dbmodels.LeaveRequest) {
	logger := log.
		WithField("employee_id", employee.ID).
		WithField("rec_id", rec.ID)
	if employee.Email == "" {
		logger.Warn("уведомление не отправлено, у сотрудника не указана почта")
		return
	}
	subject := "Решение по заявке на отпуск"
	message := fmt.Sprintf("%s, ваша заявка на отпуск (%s, %s - %s) %s.",
		employee.GetFullName(),
		rec.LeaveType.ToHuman(),
		rec.StartDate.Format("02.01.2006"),
		rec.EndDate.Format("02.01.2006"),
		statusPhrase(rec.Status),
	)
	if rec.ManagerComment != "" {
		message = fmt.Sprintf("%s\r\nКомментарий: %s", message, rec.ManagerComment)
	}
	err := smtp.Instance.SendEMail(i.from, employee.Email, message, subject)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления о решении по заявке")
		return
	}
	logger.Info("отправлено уведомление о решении по заявке")
}

func statusPhrase(status models.LeaveStatus) string {
	if status == models.LeaveStatusApproved {
		return "согласована"
	}
	return "отклонена"
}
