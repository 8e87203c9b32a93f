package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/roomboard/roomboard/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "rooms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = d.Exec(`
		CREATE TABLE rooms (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			address        TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			rent           REAL NOT NULL DEFAULT 0,
			bedrooms       REAL NOT NULL DEFAULT 0,
			bathrooms      REAL NOT NULL DEFAULT 0,
			square_feet    REAL,
			amenities      TEXT,
			available_date TEXT NOT NULL DEFAULT '',
			contact_email  TEXT NOT NULL,
			contact_phone  TEXT NOT NULL DEFAULT '',
			photo_url      TEXT NOT NULL DEFAULT '',
			is_available   INTEGER NOT NULL DEFAULT 1,
			owner_id       TEXT NOT NULL,
			owner_name     TEXT NOT NULL DEFAULT 'owner',
			created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
			updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
		);
	`)
	require.NoError(t, err)

	return d
}

func testRoom(id string) *domain.Room {
	return &domain.Room{
		ID:           id,
		Title:        "Room A",
		Address:      "1 Main St",
		Description:  "sunny corner room",
		Rent:         800,
		Bedrooms:     1,
		Bathrooms:    1,
		Amenities:    []string{"wifi"},
		ContactEmail: "a@b.co",
		ContactPhone: "+15551234567",
		IsAvailable:  true,
		OwnerID:      "u1",
		OwnerName:    "Alice",
	}
}

func TestRoomStorePutGet(t *testing.T) {
	s := NewRoomStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRoom("r1")))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testRoom("r1"), got)
}

func TestRoomStoreGetMissing(t *testing.T) {
	s := NewRoomStore(openTestDB(t))

	got, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRoomStoreSquareFeetRoundTrip(t *testing.T) {
	s := NewRoomStore(openTestDB(t))
	ctx := context.Background()

	room := testRoom("r1")
	sqft := 420.0
	room.SquareFeet = &sqft
	require.NoError(t, s.Put(ctx, room))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got.SquareFeet)
	assert.Equal(t, 420.0, *got.SquareFeet)
}

func TestRoomStoreAmenitiesReadRepair(t *testing.T) {
	d := openTestDB(t)
	s := NewRoomStore(d)
	ctx := context.Background()

	// Legacy rows can hold NULL or junk in the amenities column; reads must
	// normalize both to an empty list.
	_, err := d.Exec(`
		INSERT INTO rooms (id, title, address, contact_email, owner_id, amenities)
		VALUES ('null-row', 'T', 'A', 'a@b.co', 'u1', NULL),
		       ('junk-row', 'T', 'A', 'a@b.co', 'u1', 'not json')
	`)
	require.NoError(t, err)

	for _, id := range []string{"null-row", "junk-row"} {
		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got, id)
		assert.Equal(t, []string{}, got.Amenities, id)
	}
}

func TestRoomStoreScan(t *testing.T) {
	s := NewRoomStore(openTestDB(t))
	ctx := context.Background()

	rooms, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
	assert.NotNil(t, rooms)

	require.NoError(t, s.Put(ctx, testRoom("r1")))
	require.NoError(t, s.Put(ctx, testRoom("r2")))

	rooms, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestRoomStoreUpdatePatchesOnlyNamedFields(t *testing.T) {
	s := NewRoomStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRoom("r1")))

	newRent := 900.0
	updated, err := s.Update(ctx, "r1", &domain.RoomPatch{Rent: &newRent})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 900.0, updated.Rent)

	// Everything except rent is untouched.
	want := testRoom("r1")
	want.Rent = 900
	assert.Equal(t, want, updated)
}

func TestRoomStoreUpdateMultipleFields(t *testing.T) {
	s := NewRoomStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRoom("r1")))

	title := "Room B"
	available := false
	amenities := []string{"wifi", "laundry"}
	updated, err := s.Update(ctx, "r1", &domain.RoomPatch{
		Title:       &title,
		IsAvailable: &available,
		Amenities:   &amenities,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Room B", updated.Title)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, []string{"wifi", "laundry"}, updated.Amenities)
	assert.Equal(t, "1 Main St", updated.Address)
}

func TestRoomStoreUpdateMissingRow(t *testing.T) {
	s := NewRoomStore(openTestDB(t))

	title := "Room B"
	updated, err := s.Update(context.Background(), "nope", &domain.RoomPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestRoomStoreDelete(t *testing.T) {
	s := NewRoomStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testRoom("r1")))
	require.NoError(t, s.Delete(ctx, "r1"))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
