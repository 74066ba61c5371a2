package crud_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/databases/dbtest"
	"campusvibe_backend/internals/features/academics/dto"
	"campusvibe_backend/internals/features/academics/model"
	"campusvibe_backend/internals/helpers/crud"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func studentsApp(t *testing.T) (*fiber.App, uint) {
	t.Helper()
	db := dbtest.Open(t)
	course := dbtest.CreateCourse(t, db, "BSc Maths")

	app := fiber.New()
	crud.NewController[model.StudentModel, dto.CreateStudentRequest, dto.UpdateStudentRequest](
		crud.NewService[model.StudentModel](db, crud.Resource{
			Name:     "Student",
			Key:      "student_id",
			Preloads: []string{"Course"},
			Search:   []string{"student_id", "name"},
			Filters:  map[string]string{"section": "section"},
		}),
	).Mount(app.Group("/students"))
	return app, course.ID
}

func TestStudentLifecycle(t *testing.T) {
	app, courseID := studentsApp(t)

	body := func(id, name, section string) string {
		b, _ := json.Marshal(map[string]any{
			"student_id": id, "name": name, "email": strings.ToUpper(id) + "@Campus.test",
			"year": 2, "section": section, "course_id": courseID,
		})
		return string(b)
	}

	status, env := call(t, app, http.MethodPost, "/students", body("S100", "Asha Rao", "A"))
	require.Equal(t, http.StatusCreated, status, env.Message)
	status, _ = call(t, app, http.MethodPost, "/students", body("S101", "Vikram Sen", "B"))
	require.Equal(t, http.StatusCreated, status)

	status, env = call(t, app, http.MethodPost, "/students", body("S100", "Dup", "A"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.ErrorCode)

	status, env = call(t, app, http.MethodGet, "/students/S100", "")
	require.Equal(t, http.StatusOK, status)
	var got model.StudentModel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "s100@campus.test", got.Email)
	require.NotNil(t, got.Course)
	assert.Equal(t, "BSc Maths", got.Course.CourseName)

	status, env = call(t, app, http.MethodGet, "/students?section=B", "")
	require.Equal(t, http.StatusOK, status)
	var list []model.StudentModel
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "S101", list[0].StudentID)

	status, env = call(t, app, http.MethodGet, "/students?q=asha", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	status, env = call(t, app, http.MethodPatch, "/students/S100", `{"section":"C","year":3}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "C", got.Section)
	assert.Equal(t, 3, got.Year)

	status, _ = call(t, app, http.MethodPatch, "/students/S100", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodDelete, "/students/S100", "")
	assert.Equal(t, http.StatusOK, status)
	status, env = call(t, app, http.MethodGet, "/students/S100", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestCreateValidation(t *testing.T) {
	app, _ := studentsApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"name":"A","email":"a@b.test","year":1,"section":"A","course_id":1}`},
		{"bad email", `{"student_id":"S1","name":"A","email":"nope","year":1,"section":"A","course_id":1}`},
		{"year out of range", `{"student_id":"S1","name":"A","email":"a@b.test","year":12,"section":"A","course_id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, http.MethodPost, "/students", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
		})
	}
}

func TestNumericKeyRejectsGarbage(t *testing.T) {
	db := dbtest.Open(t)
	app := fiber.New()
	crud.NewController[model.CourseModel, dto.CreateCourseRequest, dto.UpdateCourseRequest](
		crud.NewService[model.CourseModel](db, crud.Resource{Name: "Course"}),
	).Mount(app.Group("/courses"))

	status, _ := call(t, app, http.MethodGet, "/courses/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}
