package favorites_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"EstateView/favorites"
	"EstateView/records"
	"EstateView/utils"
)

func TestManager_LocalSharesOneScope(t *testing.T) {
	local := newLocal(t, utils.NewMemoryKV())
	m := favorites.NewLocalManager(local, nil)
	if m.Authenticated() {
		t.Error("local manager reports Authenticated")
	}

	a, err := m.For(context.Background())
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	a.Add(context.Background(), 3)

	ctx := favorites.WithActor(context.Background(), favorites.Actor{ID: "alice"})
	b, _ := m.For(ctx)
	if !b.IsFavorite(3) {
		t.Error("local scope should ignore the actor")
	}
}

func TestManager_RemoteWithoutActorRejectsMutations(t *testing.T) {
	m := favorites.NewRemoteManager(favorites.ContextIdentity{}, records.NewMemoryStore(), time.Minute, nil)
	store, err := m.For(context.Background())
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	ctx := context.Background()

	if err := store.Add(ctx, 1); !errors.Is(err, favorites.ErrUnauthenticated) {
		t.Errorf("Add err = %v, want ErrUnauthenticated", err)
	}
	if err := store.Remove(ctx, 1); !errors.Is(err, favorites.ErrUnauthenticated) {
		t.Errorf("Remove err = %v, want ErrUnauthenticated", err)
	}
	if _, err := store.Toggle(ctx, 1); !errors.Is(err, favorites.ErrUnauthenticated) {
		t.Errorf("Toggle err = %v, want ErrUnauthenticated", err)
	}
	if store.IsFavorite(1) || len(store.List()) != 0 {
		t.Error("anonymous reads should be empty")
	}
}

func TestManager_RemoteScopesPerActorAndCaches(t *testing.T) {
	recs := records.NewMemoryStore()
	m := favorites.NewRemoteManager(favorites.ContextIdentity{}, recs, time.Minute, nil)

	alice := favorites.WithActor(context.Background(), favorites.Actor{ID: "alice"})
	bob := favorites.WithActor(context.Background(), favorites.Actor{ID: "bob"})

	sa, err := m.For(alice)
	if err != nil {
		t.Fatalf("For(alice): %v", err)
	}
	if err := sa.Add(alice, 7); err != nil {
		t.Fatalf("Add: %v", err)
	}

	sb, _ := m.For(bob)
	if sb.IsFavorite(7) {
		t.Error("bob sees alice's favorite")
	}

	again, _ := m.For(alice)
	if again != sa {
		t.Error("alice's store should be reused while cached")
	}
}

func TestManager_RemoteLoadFailure(t *testing.T) {
	s := newFlakyStore()
	s.failFetch = true
	m := favorites.NewRemoteManager(favorites.ContextIdentity{}, s, time.Minute, nil)

	ctx := favorites.WithActor(context.Background(), favorites.Actor{ID: "alice"})
	if _, err := m.For(ctx); !errors.Is(err, records.ErrBackingStore) {
		t.Errorf("err = %v, want ErrBackingStore", err)
	}

	s.set(func(s *flakyStore) { s.failFetch = false })
	if _, err := m.For(ctx); err != nil {
		t.Errorf("For after recovery: %v", err)
	}
}

func TestActorFromContext(t *testing.T) {
	if _, ok := favorites.ActorFromContext(context.Background()); ok {
		t.Error("empty context has an actor")
	}
	ctx := favorites.WithActor(context.Background(), favorites.Actor{})
	if _, ok := favorites.ActorFromContext(ctx); ok {
		t.Error("actor without id should not count")
	}
	ctx = favorites.WithActor(context.Background(), favorites.Actor{ID: "u1", Email: "u1@example.com"})
	a, ok := favorites.ActorFromContext(ctx)
	if !ok || a.ID != "u1" || a.Email != "u1@example.com" {
		t.Errorf("ActorFromContext = %+v, %v", a, ok)
	}
}

func TestManager_LoadOutlivesCancelledCaller(t *testing.T) {
	recs := records.NewMemoryStore()
	recs.CreateRecord(context.Background(), records.TableFavorites,
		records.Record{favorites.FieldOwner: "alice", favorites.FieldPropertyID: int64(5)})
	m := favorites.NewRemoteManager(favorites.ContextIdentity{}, recs, time.Minute, nil)

	ctx, cancel := context.WithCancel(favorites.WithActor(context.Background(), favorites.Actor{ID: "alice"}))
	cancel()

	store, err := m.For(ctx)
	if err != nil {
		t.Fatalf("For with cancelled caller: %v", err)
	}
	if !store.IsFavorite(5) {
		t.Error("loaded store is missing the persisted favorite")
	}
}
