package database

import (
	"log"

	"gorm.io/gorm"

	academicModel "campusvibe_backend/internals/features/academics/model"
	archiveModel "campusvibe_backend/internals/features/archives/model"
	clubModel "campusvibe_backend/internals/features/clubs/model"
	requestModel "campusvibe_backend/internals/features/event_requests/model"
	eventModel "campusvibe_backend/internals/features/events/events/model"
	leaderboardModel "campusvibe_backend/internals/features/events/leaderboards/model"
	memberModel "campusvibe_backend/internals/features/events/members/model"
	requirementModel "campusvibe_backend/internals/features/requirements/model"
	userModel "campusvibe_backend/internals/features/users/user/model"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&userModel.UserModel{},

		&academicModel.DepartmentModel{},
		&academicModel.CourseModel{},
		&academicModel.StudentModel{},
		&academicModel.EmployeeModel{},
		&academicModel.SubjectModel{},
		&academicModel.TimeTableModel{},
		&academicModel.TimeTableEntryModel{},

		&clubModel.ClubModel{},
		&requirementModel.ResourceModel{},

		&eventModel.EventModel{},
		&requestModel.EventRequestModel{},
		&memberModel.TeamModel{},
		&memberModel.EventMemberModel{},
		&leaderboardModel.LeaderboardModel{},
		&requirementModel.EventRequirementModel{},

		&archiveModel.EventArchiveModel{},
		&archiveModel.ParticipatedEventModel{},
		&archiveModel.CommitteeEventModel{},
		&archiveModel.OrganizedEventModel{},
		&archiveModel.EmployeeOrganizedEventModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("[MIGRATE] running auto-migration")
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("[MIGRATE] done")
	return nil
}
