package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	ExportAttendanceList(list []dbmodels.AttendanceRecord) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var attendanceHeaders = []string{"Сотрудник", "Дата", "Приход", "Уход", "Перерыв, мин", "Отработано, ч", "Сверхурочно, ч", "Заметки"}

func (i impl) ExportAttendanceList(list []dbmodels.AttendanceRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, attendanceHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeAttendanceData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = writeTotals(f, sheet, list, row); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования итоговой строки в xlsx")
	}
	f.SetSheetName(sheet, "Учет времени")
	return f.WriteToBuffer()
}

func writeAttendanceData(f *excelize.File, sheet string, list []dbmodels.AttendanceRecord, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(attendanceHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		name := ""
		if item.Employee != nil {
			name = item.Employee.GetFullName()
		}
		if err := writeColumn(f, sheet, col, row, name); err != nil {
			return row, err
		}

		// "Дата"
		col++
		if err := writeColumn(f, sheet, col, row, item.Date.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Приход"
		col++
		clockIn := ""
		if item.ClockIn != nil {
			clockIn = item.ClockIn.Format("15:04")
		}
		if err := writeColumn(f, sheet, col, row, clockIn); err != nil {
			return row, err
		}

		// "Уход"
		col++
		clockOut := ""
		if item.ClockOut != nil {
			clockOut = item.ClockOut.Format("15:04")
		}
		if err := writeColumn(f, sheet, col, row, clockOut); err != nil {
			return row, err
		}

		// "Перерыв, мин"
		col++
		if err := writeColumn(f, sheet, col, row, item.BreakMinutes); err != nil {
			return row, err
		}

		// "Отработано, ч"
		col++
		if err := writeColumn(f, sheet, col, row, item.WorkedHours); err != nil {
			return row, err
		}

		// "Сверхурочно, ч"
		col++
		if err := writeColumn(f, sheet, col, row, item.OvertimeHours); err != nil {
			return row, err
		}

		// "Заметки"
		col++
		if err := writeColumn(f, sheet, col, row, item.Notes); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeTotals(f *excelize.File, sheet string, list []dbmodels.AttendanceRecord, row int) error {
	row++
	var worked, overtime float64
	for _, item := range list {
		worked += item.WorkedHours
		overtime += item.OvertimeHours
	}
	if err := writeColumn(f, sheet, 1, row, "Итого"); err != nil {
		return err
	}
	if err := writeColumn(f, sheet, 6, row, fmt.Sprintf("%.2f", worked)); err != nil {
		return err
	}
	if err := writeColumn(f, sheet, 7, row, fmt.Sprintf("%.2f", overtime)); err != nil {
		return err
	}
	return nil
}
