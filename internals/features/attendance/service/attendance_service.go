// Package service builds the class-conflict report for an event: every
// instructor whose timetable covers a checked-in student's class group gets
// one email listing the students who were away at the event.
package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	academicModel "campusvibe_backend/internals/features/academics/model"
	eventService "campusvibe_backend/internals/features/events/events/service"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/report"
)

type Service struct {
	DB     *gorm.DB
	Mailer mailer.Notifier
}

func New(db *gorm.DB, notifier mailer.Notifier) *Service {
	return &Service{DB: db, Mailer: notifier}
}

type Result struct {
	EventID             uint     `json:"event_id"`
	Attendees           int      `json:"attendees"`
	InstructorsNotified int      `json:"instructors_notified"`
	Committee           []string `json:"committee"`
}

// instructorReport collects one instructor's classes in first-seen order.
type instructorReport struct {
	employee *academicModel.EmployeeModel
	order    []string
	classes  map[string][]string
}

func (r *instructorReport) add(label, student string) {
	if _, ok := r.classes[label]; !ok {
		r.order = append(r.order, label)
	}
	r.classes[label] = append(r.classes[label], student)
}

func (r *instructorReport) reportClasses() []mailer.ReportClass {
	out := make([]mailer.ReportClass, 0, len(r.order))
	for _, label := range r.order {
		out = append(out, mailer.ReportClass{Label: label, Students: r.classes[label]})
	}
	return out
}

// Send matches checked-in students to their class timetables by
// (course, year, section) and mails every affected instructor. Only the
// class group is compared; the event's day and time are not.
func (s *Service) Send(ctx context.Context, actor helper.Actor, eventID uint) (*Result, error) {
	ev, err := eventService.LoadManaged(ctx, s.DB, eventID, actor)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var members []memberModel.EventMemberModel
	if err := db.Where("event_id = ? AND member_type = ?", ev.ID, memberModel.MemberTypeStudent).
		Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	var attendeeIDs, committeeIDs []string
	for _, m := range members {
		if m.CheckedIn {
			attendeeIDs = append(attendeeIDs, m.MemberIDValue)
		}
		if m.Role == constants.MemberRoleStudentOrganiser || m.Role == constants.MemberRoleCommittee {
			committeeIDs = append(committeeIDs, m.MemberIDValue)
		}
	}

	attendees, err := s.students(db, attendeeIDs)
	if err != nil {
		return nil, err
	}
	committee, err := s.students(db, committeeIDs)
	if err != nil {
		return nil, err
	}

	res := &Result{EventID: ev.ID, Attendees: len(attendees), Committee: committeeLines(committee)}
	if len(attendees) == 0 {
		return res, nil
	}

	byGroup, err := s.entriesByGroup(db, attendees)
	if err != nil {
		return nil, err
	}

	reports := map[string]*instructorReport{}
	var instructorOrder []string
	for _, st := range attendees {
		for _, entry := range byGroup[st.Group()] {
			if entry.Employee == nil {
				continue
			}
			r, ok := reports[entry.InstructorID]
			if !ok {
				r = &instructorReport{employee: entry.Employee, classes: map[string][]string{}}
				reports[entry.InstructorID] = r
				instructorOrder = append(instructorOrder, entry.InstructorID)
			}
			r.add(classLabel(entry.timetable, entry.TimeTableEntryModel), st.Name)
		}
	}
	if len(reports) == 0 {
		return res, nil
	}

	sheet, err := committeeSheet(committee)
	if err != nil {
		return nil, err
	}

	msgs := make([]*mailer.Message, 0, len(reports))
	for _, id := range instructorOrder {
		r := reports[id]
		msgs = append(msgs, mailer.AttendanceReport(mailer.AttendanceReportData{
			InstructorEmail: r.employee.Email,
			InstructorName:  r.employee.Name,
			EventName:       ev.Name,
			Classes:         r.reportClasses(),
			Committee:       res.Committee,
			CommitteeSheet:  sheet,
		}))
	}
	s.Mailer.Dispatch(msgs...)
	res.InstructorsNotified = len(msgs)

	log.Printf("[ATTENDANCE] event=%d attendees=%d instructors=%d", ev.ID, res.Attendees, res.InstructorsNotified)
	return res, nil
}

func (s *Service) students(db *gorm.DB, ids []string) ([]academicModel.StudentModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []academicModel.StudentModel
	if err := db.Where("student_id IN ?", ids).Preload("Course").Find(&rows).Error; err != nil {
		return nil, err
	}
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	sort.SliceStable(rows, func(i, j int) bool { return pos[rows[i].StudentID] < pos[rows[j].StudentID] })
	return rows, nil
}

type groupEntry struct {
	academicModel.TimeTableEntryModel
	timetable *academicModel.TimeTableModel
}

// entriesByGroup loads the timetables of every attendee group with their
// entries, subjects and instructors.
func (s *Service) entriesByGroup(db *gorm.DB, attendees []academicModel.StudentModel) (map[academicModel.GroupKey][]groupEntry, error) {
	groups := map[academicModel.GroupKey]struct{}{}
	var cond *gorm.DB
	for _, st := range attendees {
		g := st.Group()
		if _, seen := groups[g]; seen {
			continue
		}
		groups[g] = struct{}{}
		if cond == nil {
			cond = db.Where("course_id = ? AND year = ? AND section = ?", g.CourseID, g.Year, g.Section)
		} else {
			cond = cond.Or("course_id = ? AND year = ? AND section = ?", g.CourseID, g.Year, g.Section)
		}
	}

	var tables []academicModel.TimeTableModel
	if err := db.Where(cond).
		Preload("Course").
		Preload("Entries", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Entries.Subject").
		Preload("Entries.Employee").
		Order("id ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	out := make(map[academicModel.GroupKey][]groupEntry, len(tables))
	for i := range tables {
		tt := &tables[i]
		key := academicModel.GroupKey{CourseID: tt.CourseID, Year: tt.Year, Section: tt.Section}
		for _, e := range tt.Entries {
			out[key] = append(out[key], groupEntry{TimeTableEntryModel: e, timetable: tt})
		}
	}
	return out, nil
}

// classLabel renders "B.Tech CSE 2 A (Data Structures)".
func classLabel(tt *academicModel.TimeTableModel, e academicModel.TimeTableEntryModel) string {
	course, subject := "", ""
	if tt.Course != nil {
		course = tt.Course.CourseName
	}
	if e.Subject != nil {
		subject = e.Subject.Name
	}
	return fmt.Sprintf("%s %d %s (%s)", course, tt.Year, tt.Section, subject)
}

func committeeLines(rows []academicModel.StudentModel) []string {
	out := make([]string, 0, len(rows))
	for _, st := range rows {
		out = append(out, fmt.Sprintf("%s (%s)", st.Name, st.StudentID))
	}
	return out
}

func committeeSheet(rows []academicModel.StudentModel) ([]byte, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	sheet := report.Sheet{
		Name:    "Committee",
		Headers: []string{"Student ID", "Name", "Email", "Course", "Year", "Section"},
	}
	for _, st := range rows {
		course := ""
		if st.Course != nil {
			course = st.Course.CourseName
		}
		sheet.Add(st.StudentID, st.Name, st.Email, course, st.Year, st.Section)
	}
	return report.Build(sheet)
}
