package service

import (
	"context"
	"errors"
	"log"
	"slices"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	eventService "campusvibe_backend/internals/features/events/events/service"
	"campusvibe_backend/internals/features/events/members/dto"
	"campusvibe_backend/internals/features/events/members/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/report"
)

// List returns the event roster, oldest registration first.
func (s *Service) List(ctx context.Context, actor helper.Actor, eventID uint) ([]dto.MemberView, error) {
	if _, err := eventService.LoadManaged(ctx, s.DB, eventID, actor); err != nil {
		return nil, err
	}
	return Roster(s.DB.WithContext(ctx), eventID)
}

// Roster resolves names, emails and team payment for every member row.
func Roster(db *gorm.DB, eventID uint) ([]dto.MemberView, error) {
	var rows []model.EventMemberModel
	if err := db.Where("event_id = ?", eventID).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	var teams []model.TeamModel
	if err := db.Where("event_id = ?", eventID).Find(&teams).Error; err != nil {
		return nil, err
	}
	teamByID := make(map[uint]model.TeamModel, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	var studentIDs, employeeIDs []string
	for _, r := range rows {
		switch r.MemberTypeValue {
		case model.MemberTypeStudent:
			studentIDs = append(studentIDs, r.MemberIDValue)
		case model.MemberTypeEmployee:
			employeeIDs = append(employeeIDs, r.MemberIDValue)
		}
	}

	type contact struct{ name, email string }
	people := map[string]contact{}
	if len(studentIDs) > 0 {
		var students []academicModel.StudentModel
		if err := db.Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
			return nil, err
		}
		for _, st := range students {
			people[string(model.MemberTypeStudent)+":"+st.StudentID] = contact{st.Name, st.Email}
		}
	}
	if len(employeeIDs) > 0 {
		var employees []academicModel.EmployeeModel
		if err := db.Where("employee_id IN ?", employeeIDs).Find(&employees).Error; err != nil {
			return nil, err
		}
		for _, e := range employees {
			people[string(model.MemberTypeEmployee)+":"+e.EmployeeID] = contact{e.Name, e.Email}
		}
	}

	out := make([]dto.MemberView, 0, len(rows))
	for _, r := range rows {
		p := people[string(r.MemberTypeValue)+":"+r.MemberIDValue]
		v := dto.MemberView{
			ID:             r.ID,
			MemberID:       r.MemberIDValue,
			MemberType:     string(r.MemberTypeValue),
			Name:           p.name,
			Email:          p.email,
			Role:           r.Role,
			CheckedIn:      r.CheckedIn,
			TeamID:         r.TeamID,
			PaymentStatus:  r.PaymentStatus,
			TransactionID:  r.TransactionID,
			CustomFormData: r.CustomFormData,
			CreatedAt:      r.CreatedAt,
		}
		if r.TeamID != nil {
			if t, ok := teamByID[*r.TeamID]; ok {
				v.TeamName = t.TeamName
				v.PaymentStatus = t.PaymentStatus
				v.TransactionID = t.TransactionID
				v.CustomFormData = t.CustomFormData
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// Export renders the roster as an xlsx workbook. Custom form fields become
// extra columns.
func (s *Service) Export(ctx context.Context, actor helper.Actor, eventID uint) ([]byte, string, error) {
	ev, err := eventService.LoadManaged(ctx, s.DB, eventID, actor)
	if err != nil {
		return nil, "", err
	}
	roster, err := Roster(s.DB.WithContext(ctx), eventID)
	if err != nil {
		return nil, "", err
	}

	customs := make([]map[string]any, len(roster))
	keys := map[string]struct{}{}
	for i, m := range roster {
		if len(m.CustomFormData) == 0 {
			continue
		}
		var data map[string]any
		if err := sonic.Unmarshal(m.CustomFormData, &data); err != nil {
			log.Printf("[MEMBERS] export event=%d member=%d: bad custom data: %v", eventID, m.ID, err)
			continue
		}
		customs[i] = data
		for k := range data {
			keys[k] = struct{}{}
		}
	}
	extra := dto.ExportColumns(keys)

	sheet := report.Sheet{
		Name:    "Members",
		Headers: append([]string{"Member ID", "Type", "Name", "Email", "Role", "Team", "Payment Status", "Transaction ID", "Checked In"}, extra...),
	}
	for i, m := range roster {
		tx := ""
		if m.TransactionID != nil {
			tx = *m.TransactionID
		}
		cells := []any{m.MemberID, m.MemberType, m.Name, m.Email, m.Role, m.TeamName, m.PaymentStatus, tx, m.CheckedIn}
		for _, k := range extra {
			var v any
			if customs[i] != nil {
				v = customs[i][k]
			}
			cells = append(cells, v)
		}
		sheet.Add(cells...)
	}

	data, err := report.Build(sheet)
	if err != nil {
		return nil, "", err
	}
	return data, report.Filename(ev.Name, "members"), nil
}

// staffRolesFor lists the roles each kind of member may take on the event team.
var staffRolesFor = map[model.MemberType][]string{
	model.MemberTypeStudent:  {constants.MemberRoleCommittee, constants.MemberRoleStudentOrganiser},
	model.MemberTypeEmployee: {constants.MemberRoleEmployeeOrganiser},
}

// AddStaff attaches a committee member or organiser to the event. Staff
// never pay, so their payment status is N/A.
func (s *Service) AddStaff(ctx context.Context, actor helper.Actor, eventID uint, in dto.AddStaffRequest) (*model.EventMemberModel, error) {
	if _, err := eventService.LoadManaged(ctx, s.DB, eventID, actor); err != nil {
		return nil, err
	}
	member, err := model.ParseMember(in.MemberType, in.MemberID)
	if err != nil {
		return nil, helper.ErrValidation(err.Error())
	}
	if !slices.Contains(staffRolesFor[member.MemberType()], in.Role) {
		return nil, helper.ErrValidation("Invalid role.")
	}

	db := s.DB.WithContext(ctx)
	if err := memberExists(db, member); err != nil {
		return nil, err
	}

	row := model.NewEventMember(eventID, member, in.Role)
	row.PaymentStatus = constants.PaymentNotApplicable
	if err := db.Create(row).Error; err != nil {
		return nil, duplicateAsConflict(err, "This person is already part of the event.")
	}
	log.Printf("[MEMBERS] staff added event=%d %s=%s role=%s", eventID, member.MemberType(), member.MemberID(), in.Role)
	return row, nil
}

func memberExists(db *gorm.DB, m model.Member) error {
	var n int64
	var err error
	switch v := m.(type) {
	case model.StudentMember:
		err = db.Model(&academicModel.StudentModel{}).Where("student_id = ?", v.StudentID).Count(&n).Error
	case model.EmployeeMember:
		err = db.Model(&academicModel.EmployeeModel{}).Where("employee_id = ?", v.EmployeeID).Count(&n).Error
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return helper.ErrValidation(string(m.MemberType()) + " " + m.MemberID() + " not found.")
	}
	return nil
}

// CheckIn records attendance for a member of the event.
func (s *Service) CheckIn(ctx context.Context, actor helper.Actor, eventID, memberRowID uint, checkedIn bool) (*model.EventMemberModel, error) {
	if _, err := eventService.LoadManaged(ctx, s.DB, eventID, actor); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	res := db.Model(&model.EventMemberModel{}).
		Where("id = ? AND event_id = ?", memberRowID, eventID).
		Update("checked_in", checkedIn)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, helper.ErrNotFound("Member not found")
	}

	var row model.EventMemberModel
	if err := db.First(&row, memberRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Member not found")
		}
		return nil, err
	}
	return &row, nil
}
