package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roomboard/roomboard/internal/domain"
)

// RoomStore maps domain.Room to and from the flat rooms table. All attribute
// encoding lives here; callers only ever see domain records.
type RoomStore struct {
	db *sql.DB
}

func NewRoomStore(db *sql.DB) *RoomStore {
	return &RoomStore{db: db}
}

const roomColumns = `id, title, address, description, rent, bedrooms, bathrooms,
	square_feet, amenities, available_date, contact_email, contact_phone,
	photo_url, is_available, owner_id, owner_name`

// Put writes a full record under its id.
func (s *RoomStore) Put(ctx context.Context, room *domain.Room) error {
	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rooms (`+roomColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, room.ID, room.Title, room.Address, room.Description, room.Rent,
		room.Bedrooms, room.Bathrooms, room.SquareFeet, amenities,
		room.AvailableDate, room.ContactEmail, room.ContactPhone,
		room.PhotoURL, room.IsAvailable, room.OwnerID, room.OwnerName)
	if err != nil {
		return fmt.Errorf("failed to put room: %w", err)
	}
	return nil
}

// Get returns the record with the given id, or (nil, nil) when absent.
func (s *RoomStore) Get(ctx context.Context, id string) (*domain.Room, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+roomColumns+` FROM rooms WHERE id = ?
	`, id)

	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// Scan returns every record in the table. There are no secondary indexes;
// listing is always a full scan.
func (s *RoomStore) Scan(ctx context.Context) ([]*domain.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+roomColumns+` FROM rooms
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}
	return rooms, nil
}

// Update rewrites only the fields present in patch and returns the updated
// record, or (nil, nil) when the row no longer exists. Each present field
// becomes its own SET clause, so arbitrary subsets patch independently.
func (s *RoomStore) Update(ctx context.Context, id string, patch *domain.RoomPatch) (*domain.Room, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Rent != nil {
		set("rent", *patch.Rent)
	}
	if patch.Bedrooms != nil {
		set("bedrooms", *patch.Bedrooms)
	}
	if patch.Bathrooms != nil {
		set("bathrooms", *patch.Bathrooms)
	}
	if patch.SquareFeet != nil {
		set("square_feet", *patch.SquareFeet)
	}
	if patch.Amenities != nil {
		amenities, err := encodeAmenities(*patch.Amenities)
		if err != nil {
			return nil, err
		}
		set("amenities", amenities)
	}
	if patch.AvailableDate != nil {
		set("available_date", *patch.AvailableDate)
	}
	if patch.ContactEmail != nil {
		set("contact_email", *patch.ContactEmail)
	}
	if patch.ContactPhone != nil {
		set("contact_phone", *patch.ContactPhone)
	}
	if patch.PhotoURL != nil {
		set("photo_url", *patch.PhotoURL)
	}
	if patch.IsAvailable != nil {
		set("is_available", *patch.IsAvailable)
	}

	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	sets = append(sets, "updated_at = datetime('now')")
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE rooms SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.Get(ctx, id)
}

// Delete removes the record with the given id. Deleting an absent id is not
// an error; callers check existence first.
func (s *RoomStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		room       domain.Room
		squareFeet sql.NullFloat64
		amenities  sql.NullString
	)
	err := row.Scan(&room.ID, &room.Title, &room.Address, &room.Description,
		&room.Rent, &room.Bedrooms, &room.Bathrooms, &squareFeet, &amenities,
		&room.AvailableDate, &room.ContactEmail, &room.ContactPhone,
		&room.PhotoURL, &room.IsAvailable, &room.OwnerID, &room.OwnerName)
	if err != nil {
		return nil, err
	}
	if squareFeet.Valid {
		room.SquareFeet = &squareFeet.Float64
	}
	room.Amenities = decodeAmenities(amenities)
	return &room, nil
}

func encodeAmenities(amenities []string) (string, error) {
	if amenities == nil {
		amenities = []string{}
	}
	data, err := json.Marshal(amenities)
	if err != nil {
		return "", fmt.Errorf("failed to encode amenities: %w", err)
	}
	return string(data), nil
}

// decodeAmenities normalizes the stored amenities column to a string slice.
// NULL, empty, or malformed values (legacy rows) decode to an empty list
// rather than failing the read.
func decodeAmenities(column sql.NullString) []string {
	if !column.Valid || column.String == "" {
		return []string{}
	}
	var amenities []string
	if err := json.Unmarshal([]byte(column.String), &amenities); err != nil || amenities == nil {
		return []string{}
	}
	return amenities
}
