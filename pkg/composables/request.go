package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/medinsure/underwriting-admin/pkg/constants"
)

var (
	ErrNoActor  = errors.New("no actor found in context")
	ErrNoLogger = errors.New("no logger found in context")
)

// Actor is the authenticated identity performing the request. It is supplied
// by the auth collaborator and used only to stamp created_by fields.
type Actor struct {
	ID   int64
	Name string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

func UseActor(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(Actor)
	if !ok {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}

func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, entry)
}

func UseLogger(ctx context.Context) (*logrus.Entry, error) {
	entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return nil, ErrNoLogger
	}
	return entry, nil
}

// MustUseLogger falls back to the standard logger when the context carries none.
func MustUseLogger(ctx context.Context) *logrus.Entry {
	entry, err := UseLogger(ctx)
	if err != nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return entry
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, id)
}

func UseRequestID(ctx context.Context) string {
	id, _ := ctx.Value(constants.RequestIDKey).(string)
	return id
}
