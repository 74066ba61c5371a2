package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/constants"
	authMiddleware "campusvibe_backend/internals/middlewares/auth"

	academicRoute "campusvibe_backend/internals/features/academics/route"
	archiveRoute "campusvibe_backend/internals/features/archives/route"
	attendanceRoute "campusvibe_backend/internals/features/attendance/route"
	clubRoute "campusvibe_backend/internals/features/clubs/route"
	eventRequestRoute "campusvibe_backend/internals/features/event_requests/route"
	eventRoute "campusvibe_backend/internals/features/events/events/route"
	leaderboardRoute "campusvibe_backend/internals/features/events/leaderboards/route"
	memberRoute "campusvibe_backend/internals/features/events/members/route"
	requirementRoute "campusvibe_backend/internals/features/requirements/route"
	authRoute "campusvibe_backend/internals/features/users/auth/route"
	userRoute "campusvibe_backend/internals/features/users/user/routes"

	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/storage"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.Store, notifier mailer.Notifier) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	eventRequestRoute.EventRequestPublicRoutes(public, db, notifier)
	eventRoute.EventPublicRoutes(public, db, store, notifier)
	memberRoute.MemberPublicRoutes(public, db, store, notifier)
	clubRoute.ClubPublicRoutes(public, db)
	archiveRoute.ArchivePublicRoutes(public, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + PasswordGate + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.Protect(db),
		authMiddleware.RequirePasswordChanged(),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("the admin panel"), constants.AdminOnly),
	)
	userRoute.UserAdminRoutes(admin, db)
	eventRequestRoute.EventRequestAdminRoutes(admin, db, notifier)
	academicRoute.AcademicAdminRoutes(admin, db)
	clubRoute.ClubAdminRoutes(admin, db)
	requirementRoute.RequirementAdminRoutes(admin, db, notifier)
	archiveRoute.ArchiveAdminRoutes(admin, db)

	// ===================== ORGANIZER =====================
	log.Println("[INFO] Setting up ORGANIZER group (Auth + PasswordGate + RoleCheck)...")
	org := app.Group("/api/o",
		authMiddleware.Protect(db),
		authMiddleware.RequirePasswordChanged(),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorOrganizer("organizer tools"), constants.OrganizerAndAbove),
	)
	eventRequestRoute.EventRequestOrganizerRoutes(org, db, notifier)
	eventRoute.EventOrganizerRoutes(org, db, store, notifier)
	memberRoute.MemberOrganizerRoutes(org, db, store, notifier)
	leaderboardRoute.LeaderboardOrganizerRoutes(org, db)
	attendanceRoute.AttendanceOrganizerRoutes(org, db, notifier)
	requirementRoute.RequirementOrganizerRoutes(org, db, notifier)

	log.Println("[INFO] Routes ready")
}
