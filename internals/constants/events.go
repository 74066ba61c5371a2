package constants

// Event request workflow
const (
	RequestStatusPendingAdmin         = "Pending_Admin"
	RequestStatusPendingMainOrganizer = "Pending_Main_Organizer"
	RequestStatusApproved             = "Approved"
	RequestStatusRejected             = "Rejected"

	RequestTypeSingle = "Single"
	RequestTypeFest   = "Fest"

	ScopeIndividual = "Individual"
	ScopePartOfFest = "Part of Fest"
)

// Registration
const (
	RegistrationIndividual = "Individual"
	RegistrationTeam       = "Team"

	PaymentNotApplicable = "N/A"
	PaymentPending       = "Pending"
	PaymentVerified      = "Verified"
)

// Event member roles
const (
	MemberRoleParticipant       = "Participant"
	MemberRoleCommittee         = "Committee Member"
	MemberRoleStudentOrganiser  = "Student Organiser"
	MemberRoleEmployeeOrganiser = "Employee Organiser"
)

// StaffRoles can be assigned by an organizer when building the event team.
var StaffRoles = []string{
	MemberRoleCommittee,
	MemberRoleStudentOrganiser,
	MemberRoleEmployeeOrganiser,
}

// Requirement approval
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)
