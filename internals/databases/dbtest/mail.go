package dbtest

import (
	"context"
	"testing"

	"campusvibe_backend/internals/helpers/mailer"
)

// Mailer returns a dispatcher backed by a recorder. Call Wait on the
// dispatcher before asserting on the recorder.
func Mailer(t testing.TB) (*mailer.Dispatcher, *mailer.Recorder) {
	t.Helper()
	rec := &mailer.Recorder{}
	d := mailer.NewDispatcher(rec, 1, 64)
	t.Cleanup(func() { _ = d.Shutdown(context.Background()) })
	return d, rec
}
