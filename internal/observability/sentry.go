package observability

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/ctxutil"
)

func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureAPIErr reports transport and server-side failures, tagged with the
// operation name from the context. Business-rule rejections (a 4xx detail or a
// success:false body) are user-facing, not system faults, and are skipped.
func CaptureAPIErr(ctx context.Context, err error) {
	if err == nil {
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && !apiErr.System() {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		if op, ok := ctxutil.Op(ctx); ok {
			scope.SetTag("op", op)
		}
		sentry.CaptureException(err)
	})
}
