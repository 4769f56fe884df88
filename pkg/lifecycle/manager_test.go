package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/marqueehq/marquee/pkg/remote"
	"github.com/marqueehq/marquee/pkg/snapshot"
	"github.com/marqueehq/marquee/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRemote(t *testing.T, store *remote.MemoryStore, bookings ...*types.Booking) {
	t.Helper()
	for _, b := range bookings {
		_, err := store.CreateBooking(context.Background(), b)
		require.NoError(t, err)
	}
}

func TestReconcileFreshStart(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore,
		&types.Booking{ID: "a", EventDate: time.Now().AddDate(0, 0, 7), NumAttendees: 10},
		&types.Booking{ID: "b", EventDate: time.Now().AddDate(0, 0, 14), NumAttendees: 20},
	)

	mgr := NewManager(remoteStore, snapshot.NewMemoryStore(), nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	buckets := mgr.Buckets()
	assert.Len(t, buckets.Pending, 2)
	assert.Empty(t, buckets.Ongoing)
	assert.Empty(t, buckets.Done)
	for _, b := range buckets.Pending {
		assert.Equal(t, types.StatusPending, b.Status)
	}
}

func TestReconcileKeepsLocalProgress(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore,
		&types.Booking{ID: "done-one", EventDate: time.Now().AddDate(0, 0, -30), NumAttendees: 5},
		&types.Booking{ID: "newcomer", EventDate: time.Now().AddDate(0, 0, 3), NumAttendees: 8},
	)

	// The snapshot already has done-one in done; a re-fetch must not
	// reset it to pending.
	snapStore := snapshot.NewMemoryStore()
	stored := types.NewBuckets()
	require.NoError(t, stored.Append(&types.Booking{ID: "done-one"}, types.StatusDone))
	require.NoError(t, snapStore.Save(stored))

	mgr := NewManager(remoteStore, snapStore, nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	buckets := mgr.Buckets()
	require.Len(t, buckets.Done, 1)
	assert.Equal(t, "done-one", buckets.Done[0].ID)
	require.Len(t, buckets.Pending, 1)
	assert.Equal(t, "newcomer", buckets.Pending[0].ID)
}

func TestReconcileIsIdempotent(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore,
		&types.Booking{ID: "a", EventDate: time.Now().AddDate(0, 0, 1), NumAttendees: 1},
		&types.Booking{ID: "b", EventDate: time.Now().AddDate(0, 0, 2), NumAttendees: 2},
	)

	mgr := NewManager(remoteStore, snapshot.NewMemoryStore(), nil)
	require.NoError(t, mgr.Reconcile(context.Background()))
	require.NoError(t, mgr.Reconcile(context.Background()))

	buckets := mgr.Buckets()
	assert.Len(t, buckets.Pending, 2, "merging the same remote list twice must not duplicate ids")

	seen := map[string]int{}
	for _, b := range buckets.All() {
		seen[b.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "booking %s appears %d times", id, n)
	}
}

func TestReconcileRemoteFailureLeavesStateUntouched(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 1})

	snapStore := snapshot.NewMemoryStore()
	mgr := NewManager(remoteStore, snapStore, nil)
	require.NoError(t, mgr.Reconcile(context.Background()))
	require.Len(t, mgr.Buckets().Pending, 1)

	// Seed a second remote booking, then fail the store: the merge
	// must abort without changing buckets.
	seedRemote(t, remoteStore, &types.Booking{ID: "b", EventDate: time.Now(), NumAttendees: 2})
	remoteStore.SetUnavailable(true)

	err := mgr.Reconcile(context.Background())
	require.ErrorIs(t, err, remote.ErrStoreUnavailable)

	buckets := mgr.Buckets()
	assert.Len(t, buckets.Pending, 1)
	assert.Equal(t, "a", buckets.Pending[0].ID)
}

func TestReconcilePersistsSnapshot(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 1})

	snapStore := snapshot.NewMemoryStore()
	mgr := NewManager(remoteStore, snapStore, nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	stored, err := snapStore.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Pending, 1)
}

func TestMoveOperatorOverride(t *testing.T) {
	mgr := NewManager(remote.NewMemoryStore(), snapshot.NewMemoryStore(), nil)
	mgr.buckets = types.NewBuckets()
	require.NoError(t, mgr.buckets.Append(&types.Booking{ID: "a"}, types.StatusDone))

	// Backward move done -> pending is an explicit operator override
	// and always permitted.
	require.NoError(t, mgr.Move("a", types.StatusPending))

	buckets := mgr.Buckets()
	assert.Empty(t, buckets.Done)
	require.Len(t, buckets.Pending, 1)
	assert.Equal(t, types.StatusPending, buckets.Pending[0].Status)
}

func TestMoveUnknownBooking(t *testing.T) {
	mgr := NewManager(remote.NewMemoryStore(), snapshot.NewMemoryStore(), nil)
	assert.ErrorIs(t, mgr.Move("ghost", types.StatusOngoing), ErrBookingNotFound)
	assert.ErrorIs(t, mgr.Move("a", types.LifecycleStatus("limbo")), ErrInvalidBucket)
}

func TestUpdateFieldMirrorsRemoteWrite(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 4})

	snapStore := snapshot.NewMemoryStore()
	mgr := NewManager(remoteStore, snapStore, nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	require.NoError(t, mgr.UpdateField(context.Background(), "a", "menuPackage", "Mini Pancakes, Iced Tea"))

	local := mgr.AllBookings()
	require.Len(t, local, 1)
	assert.Equal(t, "Mini Pancakes, Iced Tea", local[0].MenuPackage)

	stored, err := remoteStore.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mini Pancakes, Iced Tea", stored[0].MenuPackage)
}

func TestUpdateFieldRejections(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 4})

	mgr := NewManager(remoteStore, snapshot.NewMemoryStore(), nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	err := mgr.UpdateField(context.Background(), "a", "eventDate", "2031-01-01")
	assert.ErrorIs(t, err, ErrFieldNotEditable, "scheduling inputs are not editable")

	err = mgr.UpdateField(context.Background(), "ghost", "notes", "x")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	remoteStore.SetUnavailable(true)
	err = mgr.UpdateField(context.Background(), "a", "notes", "call back")
	require.ErrorIs(t, err, remote.ErrStoreUnavailable)
	assert.Empty(t, mgr.AllBookings()[0].Notes, "local copy unchanged after remote failure")
}

func TestCancelRemovesEverywhere(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 4})
	remoteStore.AddAttendee("a", &types.Attendee{ID: "att-1", Name: "Pat", NumPeople: 2})

	snapStore := snapshot.NewMemoryStore()
	mgr := NewManager(remoteStore, snapStore, nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	require.NoError(t, mgr.Cancel(context.Background(), "a"))

	assert.Empty(t, mgr.Buckets().All())
	remaining, err := remoteStore.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
	attendees, err := remoteStore.ListAttendees(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, attendees, "cancel cascades to the attendee sub-collection")
}

func TestCancelRemoteFailureKeepsBooking(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 4})

	mgr := NewManager(remoteStore, snapshot.NewMemoryStore(), nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	remoteStore.SetUnavailable(true)
	err := mgr.Cancel(context.Background(), "a")
	require.ErrorIs(t, err, remote.ErrStoreUnavailable)

	assert.Len(t, mgr.Buckets().Pending, 1, "failed remote delete must not mutate local state")
}

func TestSnapshotSaveFailureDoesNotBlockMutation(t *testing.T) {
	remoteStore := remote.NewMemoryStore()
	seedRemote(t, remoteStore, &types.Booking{ID: "a", EventDate: time.Now(), NumAttendees: 4})

	snapStore := snapshot.NewMemoryStore()
	mgr := NewManager(remoteStore, snapStore, nil)
	require.NoError(t, mgr.Reconcile(context.Background()))

	snapStore.SetFailing(true)
	require.NoError(t, mgr.Move("a", types.StatusOngoing), "snapshot writes are best-effort")
	assert.Len(t, mgr.Buckets().Ongoing, 1)
}
