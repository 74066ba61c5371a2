package service

import (
	"context"
	"log"
	"time"

	"campusvibe_backend/internals/constants"
	userModel "campusvibe_backend/internals/features/users/user/model"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/metrics"
)

// WarningWindow is how far ahead the expiry warning looks.
const WarningWindow = 7 * 24 * time.Hour

// WarnExpiring emails every non-Guest user whose access ends within the
// warning window. Users already past expiry are left to Run. Nothing is
// written.
func (o *Offboarder) WarnExpiring(ctx context.Context) (int, error) {
	now := o.Now()
	var users []userModel.UserModel
	if err := o.DB.WithContext(ctx).
		Where("role <> ? AND access_expiry_date > ? AND access_expiry_date <= ?",
			constants.RoleGuest, now, now.Add(WarningWindow)).
		Order("access_expiry_date ASC").
		Find(&users).Error; err != nil {
		metrics.AutomationRuns.WithLabelValues("expiry_warning", "error").Inc()
		return 0, err
	}

	msgs := make([]*mailer.Message, 0, len(users))
	for _, u := range users {
		msgs = append(msgs, mailer.AccessWarning(u.Email, *u.AccessExpiryDate))
	}
	o.Mailer.Dispatch(msgs...)

	metrics.AutomationRuns.WithLabelValues("expiry_warning", "ok").Inc()
	log.Printf("[AUTOMATION] expiry warning sent to %d user(s)", len(msgs))
	return len(msgs), nil
}
