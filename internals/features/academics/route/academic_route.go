package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/features/academics/dto"
	"campusvibe_backend/internals/features/academics/model"
	"campusvibe_backend/internals/helpers/crud"
)

// AcademicAdminRoutes mounts the master data tables under the admin group.
func AcademicAdminRoutes(admin fiber.Router, db *gorm.DB) {
	crud.NewController[model.DepartmentModel, dto.CreateDepartmentRequest, dto.UpdateDepartmentRequest](
		crud.NewService[model.DepartmentModel](db, crud.Resource{
			Name:    "Department",
			OrderBy: "name ASC",
			Search:  []string{"name"},
		}),
	).Mount(admin.Group("/departments"))

	crud.NewController[model.CourseModel, dto.CreateCourseRequest, dto.UpdateCourseRequest](
		crud.NewService[model.CourseModel](db, crud.Resource{
			Name:    "Course",
			OrderBy: "course_name ASC",
			Search:  []string{"course_name"},
			Filters: map[string]string{"department_id": "department_id"},
		}),
	).Mount(admin.Group("/courses"))

	crud.NewController[model.StudentModel, dto.CreateStudentRequest, dto.UpdateStudentRequest](
		crud.NewService[model.StudentModel](db, crud.Resource{
			Name:     "Student",
			Key:      "student_id",
			Preloads: []string{"Course"},
			Search:   []string{"student_id", "name", "email"},
			Filters: map[string]string{
				"course_id": "course_id",
				"year":      "year",
				"section":   "section",
			},
		}),
	).Mount(admin.Group("/students"))

	crud.NewController[model.EmployeeModel, dto.CreateEmployeeRequest, dto.UpdateEmployeeRequest](
		crud.NewService[model.EmployeeModel](db, crud.Resource{
			Name:    "Employee",
			Key:     "employee_id",
			Search:  []string{"employee_id", "name", "email"},
			Filters: map[string]string{"department_id": "department_id"},
		}),
	).Mount(admin.Group("/employees"))

	crud.NewController[model.SubjectModel, dto.CreateSubjectRequest, dto.UpdateSubjectRequest](
		crud.NewService[model.SubjectModel](db, crud.Resource{
			Name:    "Subject",
			OrderBy: "name ASC",
			Search:  []string{"name", "code"},
			Filters: map[string]string{"course_id": "course_id", "year": "year"},
		}),
	).Mount(admin.Group("/subjects"))

	crud.NewController[model.TimeTableModel, dto.CreateTimeTableRequest, dto.UpdateTimeTableRequest](
		crud.NewService[model.TimeTableModel](db, crud.Resource{
			Name:     "Timetable",
			OrderBy:  "course_id ASC, year ASC, section ASC",
			Preloads: []string{"Course", "Entries", "Entries.Subject", "Entries.Employee"},
			Filters:  map[string]string{"course_id": "course_id", "year": "year", "section": "section"},
		}),
	).Mount(admin.Group("/timetables"))

	crud.NewController[model.TimeTableEntryModel, dto.CreateTimeTableEntryRequest, dto.UpdateTimeTableEntryRequest](
		crud.NewService[model.TimeTableEntryModel](db, crud.Resource{
			Name:     "Timetable entry",
			Preloads: []string{"Subject", "Employee"},
			Filters: map[string]string{
				"time_table_id": "time_table_id",
				"employee_id":   "employee_id",
				"day":           "day",
			},
		}),
	).Mount(admin.Group("/timetable-entries"))
}
