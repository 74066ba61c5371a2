package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFormValues(t *testing.T) {
	in := FromFormValues(map[string][]string{
		FieldTeamName:          {" Photons "},
		FieldTeamLeaderID:      {"S1"},
		FieldTeamMemberIDs:     {"S2, S3", "S4"},
		FieldTransactionID:     {"TX1"},
		FieldPaymentScreenshot: {"ignored"},
		"department":           {"Physics"},
		"skills":               {"go", "sql"},
	})

	assert.Equal(t, "Photons", in.TeamName)
	assert.Equal(t, "S1", in.TeamLeaderStudentID)
	assert.Equal(t, []string{"S2", "S3", "S4"}, in.TeamMemberStudentIDs)
	assert.Equal(t, "TX1", in.TransactionID)
	assert.Equal(t, map[string]any{
		"department": "Physics",
		"skills":     []string{"go", "sql"},
	}, in.CustomFormData)
}

func TestFromJSON(t *testing.T) {
	in := FromJSON(map[string]any{
		FieldStudentID: 42.0,
		"year":         2.0,
	})
	assert.Equal(t, "42", in.StudentID)
	assert.Equal(t, map[string]any{"year": 2.0}, in.CustomFormData)
}

func TestTeamStudentIDs(t *testing.T) {
	tests := []struct {
		name string
		in   RegistrationInput
		want []string
	}{
		{"leader only", RegistrationInput{TeamLeaderStudentID: "S1"}, []string{"S1"}},
		{"dedupes leader", RegistrationInput{TeamLeaderStudentID: "S1", TeamMemberStudentIDs: []string{"S1", "S2"}}, []string{"S1", "S2"}},
		{"dedupes teammates", RegistrationInput{TeamLeaderStudentID: "S1", TeamMemberStudentIDs: []string{"S3", "S2", "S3"}}, []string{"S1", "S3", "S2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.TeamStudentIDs())
		})
	}
}
