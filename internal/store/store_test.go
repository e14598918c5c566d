package store_test

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

func setup(t *testing.T, maxConns int32) (*store.Store, *pgxpool.Pool) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	cfg, err := pgxpool.ParseConfig(dbURL)
	require.NoError(t, err)
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	st := store.New(pool, 2*time.Second)
	require.NoError(t, st.Migrate(context.Background()))
	return st, pool
}

// randomDate picks a day far in the future so runs don't collide.
func randomDate() time.Time {
	return time.Date(2100+rand.Intn(800), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestMigrateIsIdempotent(t *testing.T) {
	st, _ := setup(t, 2)
	require.NoError(t, st.Migrate(context.Background()))
}

func TestAddressRoundTrip(t *testing.T) {
	st, _ := setup(t, 2)
	ctx := context.Background()

	in := &model.Address{
		DoorNo:   ptr("12B"),
		Street:   "Gandhi Street",
		Landmark: ptr("near the temple"),
		Area:     "T. Nagar",
		City:     "Chennai",
	}
	require.NoError(t, st.InsertAddress(ctx, in))
	assert.NotZero(t, in.ID)

	got, err := st.LatestAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.DoorNo, got.DoorNo)
	assert.Equal(t, in.Street, got.Street)
	assert.Equal(t, in.Landmark, got.Landmark)
	assert.Equal(t, in.Area, got.Area)
	assert.Equal(t, in.City, got.City)
}

func TestAddressOptionalFieldsStayNil(t *testing.T) {
	st, _ := setup(t, 2)
	ctx := context.Background()

	require.NoError(t, st.InsertAddress(ctx, &model.Address{Street: "Main Rd", Area: "Adyar", City: "Chennai"}))
	got, err := st.LatestAddress(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.DoorNo)
	assert.Nil(t, got.Landmark)
}

func TestSlotCountAndTimes(t *testing.T) {
	st, _ := setup(t, 2)
	ctx := context.Background()
	day := randomDate()

	n, err := st.CountAppointmentsAt(ctx, day, "09:00")
	require.NoError(t, err)
	assert.Zero(t, n)

	times, err := st.TimesBookedOn(ctx, day)
	require.NoError(t, err)
	assert.NotNil(t, times)
	assert.Empty(t, times)

	for _, slot := range []string{"10:00", "09:00"} {
		a := &model.Appointment{Email: "p@example.com", Name: "Pat", Date: day, Time: slot, Address: "1 Main St"}
		require.NoError(t, st.InsertAppointment(ctx, a))
		assert.NotZero(t, a.ID)
	}

	n, err = st.CountAppointmentsAt(ctx, day, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	times, err = st.TimesBookedOn(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "09:00"}, times)
}

func TestInsertAppointmentOptionalFields(t *testing.T) {
	st, _ := setup(t, 2)
	a := &model.Appointment{
		Email: "p@example.com", Name: "Pat", Age: ptr(41), Gender: ptr("female"),
		Date: randomDate(), Time: "11:30", Address: "line one\nline two",
	}
	require.NoError(t, st.InsertAppointment(context.Background(), a))
	assert.False(t, a.CreatedAt.IsZero())
}

func TestDuplicateSlotRejected(t *testing.T) {
	st, _ := setup(t, 2)
	ctx := context.Background()
	day := randomDate()

	first := &model.Appointment{Email: "a@example.com", Name: "A", Date: day, Time: "10:00", Address: "x"}
	require.NoError(t, st.InsertAppointment(ctx, first))

	err := st.InsertAppointment(ctx, &model.Appointment{Email: "b@example.com", Name: "B", Date: day, Time: "10:00", Address: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrSlotTaken)

	var se *store.StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "insert appointment", se.Op)
}

// Failing statements must hand their connection back; with a pool of two,
// a leak would turn the third failure into an acquire timeout.
func TestFailedQueriesReleaseConnections(t *testing.T) {
	st, pool := setup(t, 2)
	ctx := context.Background()
	day := randomDate()

	require.NoError(t, st.InsertAppointment(ctx, &model.Appointment{Email: "a@example.com", Name: "A", Date: day, Time: "08:00", Address: "x"}))

	for i := 0; i < 10; i++ {
		err := st.InsertAppointment(ctx, &model.Appointment{Email: "a@example.com", Name: "A", Date: day, Time: "08:00", Address: "x"})
		require.ErrorIs(t, err, store.ErrSlotTaken, "attempt %d", i)
	}
	assert.Zero(t, pool.Stat().AcquiredConns())
}

func TestCancelledContextIsStorageError(t *testing.T) {
	st, pool := setup(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.CountAppointmentsAt(ctx, randomDate(), "09:00")
	var se *store.StorageError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, pool.Stat().AcquiredConns())
}
