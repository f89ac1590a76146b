package favorites

import "context"

// Actor is an authenticated caller.
type Actor struct {
	ID    string
	Email string
}

// Identity reports the actor behind a request, if any.
type Identity interface {
	CurrentActor(ctx context.Context) (Actor, bool)
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok && a.ID != ""
}

// ContextIdentity reads the actor placed on the context by WithActor.
type ContextIdentity struct{}

func (ContextIdentity) CurrentActor(ctx context.Context) (Actor, bool) {
	return ActorFromContext(ctx)
}
