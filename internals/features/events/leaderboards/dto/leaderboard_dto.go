package dto

type ScoreInput struct {
	CompetitorID   string `json:"competitor_id" validate:"required,max=50"`
	CompetitorType string `json:"competitor_type" validate:"required,oneof=Team Individual"`
	Marks          int    `json:"marks" validate:"min=0"`
}

type UpdateLeaderboardRequest struct {
	Scores    []ScoreInput `json:"scores" validate:"dive"`
	ShowMarks *bool        `json:"show_marks"`
}
