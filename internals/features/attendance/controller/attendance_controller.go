package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/features/attendance/service"
	helper "campusvibe_backend/internals/helpers"
)

type AttendanceController struct {
	Service *service.Service
}

func NewAttendanceController(svc *service.Service) *AttendanceController {
	return &AttendanceController{Service: svc}
}

// POST /api/o/attendance/:eventId/send-attendance
func (ctl *AttendanceController) SendReport(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParamID(c, "eventId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Service.Send(c.UserContext(), actor, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := fmt.Sprintf("Attendance report sent to %d faculty members.", res.InstructorsNotified)
	if res.Attendees == 0 {
		msg = "No checked-in students for this event."
	}
	return helper.JsonOK(c, msg, res)
}
