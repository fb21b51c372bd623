package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrm-backend/controllers"
	attendancehandler "hrm-backend/lib/attendance"
	"hrm-backend/middleware"
	apimodels "hrm-backend/models/api"
	attendanceapimodels "hrm-backend/models/api/attendance"
)

type attendanceApiController struct {
	controllers.BaseAPIController
}

func InitAttendanceApiRouters(app *fiber.App) {
	controller := attendanceApiController{}
	app.Route("attendance", func(router fiber.Router) {
		router.Post("clock-in", controller.clockIn)
		router.Post("clock-out", controller.clockOut)
		router.Post("list", controller.list)
		router.Get("monthly-total", controller.monthlyTotal)
		router.Get("export", controller.export)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Put(":id", middleware.AdminRequired(), controller.update)
	})
}

// @Summary Отметка прихода
// @Tags Учет времени
// @Description Отметка прихода текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.ClockRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/clock-in [post]
func (c *attendanceApiController) clockIn(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.ClockRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetUserID(ctx)
	view, err := attendancehandler.Instance.ClockIn(ctx.UserContext(), employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки прихода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Отметка ухода
// @Tags Учет времени
// @Description Отметка ухода текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.ClockRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/clock-out [post]
func (c *attendanceApiController) clockOut(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.ClockRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetUserID(ctx)
	view, err := attendancehandler.Instance.ClockOut(ctx.UserContext(), employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки ухода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Создание записи
// @Tags Учет времени
// @Description Ручное создание записи учета времени
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.AttendanceData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance [post]
func (c *attendanceApiController) create(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.AttendanceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := attendancehandler.Instance.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания записи учета времени")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление записи
// @Tags Учет времени
// @Description Обновление записи учета времени
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID записи"
// @Param	body body	 attendanceapimodels.AttendanceUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/{id} [put]
func (c *attendanceApiController) update(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор записи"))
	}
	var payload attendanceapimodels.AttendanceUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := attendancehandler.Instance.Update(ctx.UserContext(), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления записи учета времени")
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Список записей
// @Tags Учет времени
// @Description Список записей учета времени за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.AttendanceFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/list [post]
func (c *attendanceApiController) list(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.AttendanceFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	// свои записи доступны всем, чужие только администратору
	if payload.EmployeeID == "" || !middleware.GetUserRole(ctx).IsAdmin() {
		payload.EmployeeID = middleware.GetUserID(ctx)
	}
	list, err := attendancehandler.Instance.List(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей учета времени")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отработано за месяц
// @Tags Учет времени
// @Description Сумма отработанных часов за календарный месяц
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id			query		string	false	"ID сотрудника"
// @Param   year				query		int		true	"Год"
// @Param   month				query		int		true	"Месяц (1-12)"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.MonthlyTotalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/monthly-total [get]
func (c *attendanceApiController) monthlyTotal(ctx *fiber.Ctx) error {
	employeeID, year, month, err := c.getPeriodParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := attendancehandler.Instance.MonthlyTotal(ctx.UserContext(), employeeID, year, month)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчета отработанных часов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Выгрузка в xlsx
// @Tags Учет времени
// @Description Выгрузка записей учета времени за месяц в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id			query		string	false	"ID сотрудника"
// @Param   year				query		int		true	"Год"
// @Param   month				query		int		true	"Месяц (1-12)"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/export [get]
func (c *attendanceApiController) export(ctx *fiber.Ctx) error {
	employeeID, year, month, err := c.getPeriodParams(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := attendancehandler.Instance.ExportMonth(ctx.UserContext(), employeeID, year, month)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета")
	}
	fileName := fmt.Sprintf("attendance_%d_%02d.xlsx", year, int(month))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(file.Bytes())
}

func (c *attendanceApiController) getPeriodParams(ctx *fiber.Ctx) (employeeID string, year int, month time.Month, err error) {
	employeeID = ctx.Query("employee_id")
	if employeeID == "" || !middleware.GetUserRole(ctx).IsAdmin() {
		employeeID = middleware.GetUserID(ctx)
	}
	year = ctx.QueryInt("year")
	monthNum := ctx.QueryInt("month")
	if year < 2000 || monthNum < 1 || monthNum > 12 {
		return "", 0, 0, fmt.Errorf("не корректный период: год %v, месяц %v", year, monthNum)
	}
	return employeeID, year, time.Month(monthNum), nil
}
