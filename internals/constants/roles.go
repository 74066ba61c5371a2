package constants

import "fmt"

// Account roles
const (
	RoleAdmin        = "Admin"
	RoleOrganizer    = "Organizer"
	RoleSubOrganizer = "SubOrganizer"
	RoleGuest        = "Guest"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess     = "Forbidden: Admin access only (%s)."
	ErrOnlyOrganizersCanAccess = "Forbidden: Organizer access only (%s)."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOrganizer(feature string) string {
	return fmt.Sprintf(ErrOnlyOrganizersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleOrganizer,
		RoleSubOrganizer,
		RoleGuest,
	}

	OrganizerAndAbove = []string{
		RoleOrganizer,
		RoleSubOrganizer,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
