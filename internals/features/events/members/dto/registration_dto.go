package dto

import (
	"fmt"
	"sort"
	"strings"

	memberModel "campusvibe_backend/internals/features/events/members/model"
)

// Reserved form fields; everything else is kept as custom form data.
const (
	FieldStudentID         = "student_id"
	FieldTeamName          = "team_name"
	FieldTeamLeaderID      = "team_leader_student_id"
	FieldTeamMemberIDs     = "team_member_student_ids"
	FieldTransactionID     = "transaction_id"
	FieldPaymentScreenshot = "paymentScreenshot"
)

type RegistrationInput struct {
	StudentID            string
	TeamName             string
	TeamLeaderStudentID  string
	TeamMemberStudentIDs []string
	TransactionID        string
	CustomFormData       map[string]any
}

// FromFormValues reads a multipart or urlencoded form. Teammates may be sent
// as repeated fields or as one comma separated value.
func FromFormValues(values map[string][]string) RegistrationInput {
	in := RegistrationInput{CustomFormData: map[string]any{}}
	first := func(vs []string) string {
		if len(vs) == 0 {
			return ""
		}
		return strings.TrimSpace(vs[0])
	}

	for key, vs := range values {
		switch key {
		case FieldStudentID:
			in.StudentID = first(vs)
		case FieldTeamName:
			in.TeamName = first(vs)
		case FieldTeamLeaderID:
			in.TeamLeaderStudentID = first(vs)
		case FieldTeamMemberIDs, FieldTeamMemberIDs + "[]":
			for _, v := range vs {
				in.TeamMemberStudentIDs = append(in.TeamMemberStudentIDs, splitIDs(v)...)
			}
		case FieldTransactionID:
			in.TransactionID = first(vs)
		case FieldPaymentScreenshot:
		default:
			if len(vs) == 1 {
				in.CustomFormData[key] = vs[0]
			} else if len(vs) > 1 {
				in.CustomFormData[key] = vs
			}
		}
	}
	return in
}

// FromJSON reads a decoded JSON object body.
func FromJSON(body map[string]any) RegistrationInput {
	in := RegistrationInput{CustomFormData: map[string]any{}}
	str := func(v any) string {
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		case nil:
			return ""
		default:
			return strings.TrimSpace(fmt.Sprint(t))
		}
	}

	for key, v := range body {
		switch key {
		case FieldStudentID:
			in.StudentID = str(v)
		case FieldTeamName:
			in.TeamName = str(v)
		case FieldTeamLeaderID:
			in.TeamLeaderStudentID = str(v)
		case FieldTeamMemberIDs:
			switch t := v.(type) {
			case []any:
				for _, x := range t {
					if s := str(x); s != "" {
						in.TeamMemberStudentIDs = append(in.TeamMemberStudentIDs, s)
					}
				}
			default:
				in.TeamMemberStudentIDs = splitIDs(str(t))
			}
		case FieldTransactionID:
			in.TransactionID = str(v)
		default:
			in.CustomFormData[key] = v
		}
	}
	return in
}

func splitIDs(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TeamStudentIDs returns the leader followed by the distinct teammates.
func (in RegistrationInput) TeamStudentIDs() []string {
	seen := map[string]struct{}{in.TeamLeaderStudentID: {}}
	out := []string{in.TeamLeaderStudentID}
	for _, id := range in.TeamMemberStudentIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type RegistrationResult struct {
	RegistrationType string                        `json:"registration_type"`
	PaymentStatus    string                        `json:"payment_status"`
	Member           *memberModel.EventMemberModel `json:"member,omitempty"`
	Team             *memberModel.TeamModel        `json:"team,omitempty"`
}

// sortedKeys is used for stable export columns.
func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
