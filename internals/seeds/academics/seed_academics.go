package academics

import (
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusvibe_backend/internals/features/academics/model"
)

type courseSeed struct {
	CourseName string `json:"course_name"`
	Department string `json:"department"`
}

type studentSeed struct {
	StudentID   string `json:"student_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ClassRollNo string `json:"class_roll_no"`
	Year        int    `json:"year"`
	Section     string `json:"section"`
	Course      string `json:"course"`
}

type employeeSeed struct {
	EmployeeID         string `json:"employee_id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Department         string `json:"department"`
	IsResourceIncharge bool   `json:"is_resource_incharge"`
}

// Data is the layout of the academics seed file.
type Data struct {
	Departments []string       `json:"departments"`
	Courses     []courseSeed   `json:"courses"`
	Students    []studentSeed  `json:"students"`
	Employees   []employeeSeed `json:"employees"`
}

// SeedAcademicsFromJSON loads master data by natural key. Rows that already
// exist are left untouched, so the seed can be re-run.
func SeedAcademicsFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading academics seed:", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var data Data
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}
	return SeedAcademics(db, data)
}

func SeedAcademics(db *gorm.DB, data Data) error {
	return db.Transaction(func(tx *gorm.DB) error {
		deptIDs := map[string]uint{}
		for _, name := range data.Departments {
			d := model.DepartmentModel{Name: name}
			if err := tx.Where(model.DepartmentModel{Name: name}).FirstOrCreate(&d).Error; err != nil {
				return fmt.Errorf("department %q: %w", name, err)
			}
			deptIDs[name] = d.ID
		}

		courseIDs := map[string]uint{}
		for _, cs := range data.Courses {
			c := model.CourseModel{CourseName: cs.CourseName}
			if id, ok := deptIDs[cs.Department]; ok {
				c.DepartmentID = &id
			}
			if err := tx.Where(model.CourseModel{CourseName: cs.CourseName}).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("course %q: %w", cs.CourseName, err)
			}
			courseIDs[cs.CourseName] = c.ID
		}

		for _, st := range data.Students {
			courseID, ok := courseIDs[st.Course]
			if !ok {
				return fmt.Errorf("student %s: unknown course %q", st.StudentID, st.Course)
			}
			row := model.StudentModel{
				StudentID:   st.StudentID,
				Name:        st.Name,
				Email:       st.Email,
				ClassRollNo: st.ClassRollNo,
				Year:        st.Year,
				Section:     st.Section,
				CourseID:    courseID,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("student %s: %w", st.StudentID, err)
			}
		}

		for _, e := range data.Employees {
			row := model.EmployeeModel{
				EmployeeID:         e.EmployeeID,
				Name:               e.Name,
				Email:              e.Email,
				IsResourceIncharge: e.IsResourceIncharge,
			}
			if id, ok := deptIDs[e.Department]; ok {
				row.DepartmentID = &id
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("employee %s: %w", e.EmployeeID, err)
			}
		}

		log.Printf("✅ Academics seeded: %d departments, %d courses, %d students, %d employees",
			len(data.Departments), len(data.Courses), len(data.Students), len(data.Employees))
		return nil
	})
}
