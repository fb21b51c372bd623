package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"hrm-backend/controllers"
	filestorage "hrm-backend/lib/file-storage"
	leavehandler "hrm-backend/lib/leave"
	"hrm-backend/middleware"
	apimodels "hrm-backend/models/api"
	leaveapimodels "hrm-backend/models/api/leave"
)

// лимит размера вложения к заявке
const attachmentSizeLimit = 10 * 1024 * 1024

type leaveApiController struct {
	controllers.BaseAPIController
}

func InitLeaveApiRouters(app *fiber.App) {
	controller := leaveApiController{}
	app.Route("leave", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("my", controller.my)
		router.Get("remaining-days", controller.remainingDays)
		router.Post("list", middleware.LeaveReviewerRequired(), controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("cancel", controller.cancel)
			idRoute.Put("status", middleware.LeaveReviewerRequired(), controller.updateStatus)
			idRoute.Route("attachment", func(attachmentRoute fiber.Router) {
				attachmentRoute.Get("", controller.attachmentList)
				attachmentRoute.Post("", middleware.WithBodyLimit(attachmentSizeLimit), controller.attachmentUpload)
				attachmentRoute.Get(":attachment_id", controller.attachmentDownload)
			})
		})
	})
}

// @Summary Создание заявки
// @Tags Отпуска
// @Description Создание заявки на отпуск текущим сотрудником
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave [post]
func (c *leaveApiController) create(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetUserID(ctx)
	view, err := leavehandler.Instance.Create(ctx.UserContext(), employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Получение заявки
// @Tags Отпуска
// @Description Получение заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id} [get]
func (c *leaveApiController) get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор заявки"))
	}
	view, err := leavehandler.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Мои заявки
// @Tags Отпуска
// @Description Заявки текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/my [get]
func (c *leaveApiController) my(ctx *fiber.Ctx) error {
	filter := leaveapimodels.LeaveFilter{
		EmployeeID: middleware.GetUserID(ctx),
	}
	list, err := leavehandler.Instance.List(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Список заявок
// @Tags Отпуска
// @Description Список заявок с фильтром
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/list [post]
func (c *leaveApiController) list(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := leavehandler.Instance.List(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Решение по заявке
// @Tags Отпуска
// @Description Согласование или отклонение заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID заявки"
// @Param	body body	 leaveapimodels.LeaveStatusUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id}/status [put]
func (c *leaveApiController) updateStatus(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор заявки"))
	}
	var payload leaveapimodels.LeaveStatusUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	reviewerID := middleware.GetUserID(ctx)
	if err := leavehandler.Instance.UpdateStatus(ctx.UserContext(), id, reviewerID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления статуса заявки")
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Отмена заявки
// @Tags Отпуска
// @Description Отмена собственной заявки на рассмотрении
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id}/cancel [put]
func (c *leaveApiController) cancel(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор заявки"))
	}
	employeeID := middleware.GetUserID(ctx)
	if err := leavehandler.Instance.Cancel(ctx.UserContext(), id, employeeID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены заявки")
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Остаток отпуска
// @Tags Отпуска
// @Description Остаток дней ежегодного отпуска за год
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id			query		string	false	"ID сотрудника"
// @Param   year				query		int		true	"Год"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.RemainingDaysView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/remaining-days [get]
func (c *leaveApiController) remainingDays(ctx *fiber.Ctx) error {
	employeeID := ctx.Query("employee_id")
	if employeeID == "" || !middleware.GetUserRole(ctx).CanReviewLeave() {
		employeeID = middleware.GetUserID(ctx)
	}
	year := ctx.QueryInt("year")
	if year < 2000 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(fmt.Sprintf("не корректный год: %v", year)))
	}
	view, err := leavehandler.Instance.RemainingLeaveDays(ctx.UserContext(), employeeID, year)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчета остатка отпуска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Вложения заявки
// @Tags Отпуска
// @Description Список вложений заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id}/attachment [get]
func (c *leaveApiController) attachmentList(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор заявки"))
	}
	list, err := filestorage.Instance.ListByLeaveRequest(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения вложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Загрузка вложения
// @Tags Отпуска
// @Description Загрузка вложения к заявке на отпуск (multipart, поле file)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id}/attachment [post]
func (c *leaveApiController) attachmentUpload(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор заявки"))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	contentType := fileHeader.Header.Get("Content-Type")
	attachmentID, err := filestorage.Instance.UploadLeaveAttachment(ctx.UserContext(), id, fileHeader.Filename, contentType, data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(attachmentID))
}

// @Summary Скачивание вложения
// @Tags Отпуска
// @Description Скачивание вложения заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"ID заявки"
// @Param   attachment_id		path		string	true	"ID вложения"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id}/attachment/{attachment_id} [get]
func (c *leaveApiController) attachmentDownload(ctx *fiber.Ctx) error {
	attachmentID := ctx.Params("attachment_id")
	if attachmentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор вложения"))
	}
	view, data, err := filestorage.Instance.GetAttachment(ctx.UserContext(), attachmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания вложения")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, view.FileName))
	if view.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, view.ContentType)
	}
	return ctx.Status(fiber.StatusOK).Send(data)
}
