package controller

import (
	"mime/multipart"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/constants"
	"campusvibe_backend/internals/features/events/members/dto"
	"campusvibe_backend/internals/features/events/members/service"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
)

type MemberController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewMemberController(svc *service.Service) *MemberController {
	return &MemberController{Service: svc, Validate: validator.New()}
}

// bindRegistration accepts multipart, urlencoded or JSON bodies.
func bindRegistration(c *fiber.Ctx) (dto.RegistrationInput, *multipart.FileHeader, error) {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return dto.RegistrationInput{}, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
		}
		var fh *multipart.FileHeader
		if files := form.File[dto.FieldPaymentScreenshot]; len(files) > 0 {
			fh = files[0]
		}
		return dto.FromFormValues(form.Value), fh, nil
	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		values := map[string][]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = append(values[string(k)], string(v))
		})
		return dto.FromFormValues(values), nil, nil
	default:
		body := map[string]any{}
		if len(c.Body()) > 0 {
			if err := sonic.Unmarshal(c.Body(), &body); err != nil {
				return dto.RegistrationInput{}, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
		}
		return dto.FromJSON(body), nil, nil
	}
}

// POST /api/public/register/:eventId/register
func (ctl *MemberController) Register(c *fiber.Ctx) error {
	eventID, err := helper.ParamID(c, "eventId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	in, screenshot, err := bindRegistration(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Service.Register(c.UserContext(), eventID, in, screenshot)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Registration successful."
	if res.RegistrationType == constants.RegistrationTeam {
		msg = "Team registration successful."
	}
	if res.PaymentStatus == constants.PaymentPending {
		msg = strings.TrimSuffix(msg, "successful.") + "pending verification."
	}
	return helper.JsonCreated(c, msg, res)
}

// GET /api/o/events/:eventId/members
func (ctl *MemberController) List(c *fiber.Ctx) error {
	actor, eventID, err := actorAndEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Service.List(c.UserContext(), actor, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Members fetched successfully", rows)
}

// GET /api/o/events/:eventId/members/export
func (ctl *MemberController) Export(c *fiber.Ctx) error {
	actor, eventID, err := actorAndEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	data, filename, err := ctl.Service.Export(c.UserContext(), actor, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Set(fiber.HeaderContentType, mailer.XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// POST /api/o/events/:eventId/members
func (ctl *MemberController) AddStaff(c *fiber.Ctx) error {
	actor, eventID, err := actorAndEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AddStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Service.AddStaff(c.UserContext(), actor, eventID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Team member added", row)
}

// PATCH /api/o/events/:eventId/members/:memberId/check-in
func (ctl *MemberController) CheckIn(c *fiber.Ctx) error {
	actor, eventID, err := actorAndEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	memberID, err := helper.ParamID(c, "memberId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Service.CheckIn(c.UserContext(), actor, eventID, memberID, *req.CheckedIn)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Check-in updated", row)
}

// GET /api/o/events/:eventId/verifications
func (ctl *MemberController) PendingVerifications(c *fiber.Ctx) error {
	actor, eventID, err := actorAndEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := ctl.Service.PendingVerifications(c.UserContext(), actor, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Pending verifications fetched", out)
}

// POST /api/o/verify-payment
func (ctl *MemberController) VerifyPayment(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.PaymentTarget
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctl.Service.VerifyPayment(c.UserContext(), actor, req); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Payment verified.", req)
}

// POST /api/o/reject-payment
func (ctl *MemberController) RejectPayment(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RejectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctl.Service.RejectPayment(c.UserContext(), actor, req); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Payment rejected and registration deleted.", req.PaymentTarget)
}

func actorAndEvent(c *fiber.Ctx) (helper.Actor, uint, error) {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.Actor{}, 0, err
	}
	eventID, err := helper.ParamID(c, "eventId")
	if err != nil {
		return helper.Actor{}, 0, err
	}
	return actor, eventID, nil
}
