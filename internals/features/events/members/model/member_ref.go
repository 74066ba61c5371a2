package model

import "fmt"

type MemberType string

const (
	MemberTypeStudent  MemberType = "Student"
	MemberTypeEmployee MemberType = "Employee"
)

// Member is the closed set of identities an event member row can point at.
// Only StudentMember and EmployeeMember implement it.
type Member interface {
	MemberType() MemberType
	MemberID() string
	isMember()
}

type StudentMember struct{ StudentID string }

func (StudentMember) MemberType() MemberType { return MemberTypeStudent }
func (m StudentMember) MemberID() string     { return m.StudentID }
func (StudentMember) isMember()              {}

type EmployeeMember struct{ EmployeeID string }

func (EmployeeMember) MemberType() MemberType { return MemberTypeEmployee }
func (m EmployeeMember) MemberID() string     { return m.EmployeeID }
func (EmployeeMember) isMember()              {}

// ParseMember rebuilds a Member from its stored (type, id) pair.
func ParseMember(memberType, id string) (Member, error) {
	if id == "" {
		return nil, fmt.Errorf("member id is required")
	}
	switch MemberType(memberType) {
	case MemberTypeStudent:
		return StudentMember{StudentID: id}, nil
	case MemberTypeEmployee:
		return EmployeeMember{EmployeeID: id}, nil
	}
	return nil, fmt.Errorf("unknown member type %q", memberType)
}
