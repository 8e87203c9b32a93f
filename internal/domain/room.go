package domain

// Room is the persisted room listing. The id, ownerId and ownerName fields
// are assigned by the service at create time and never taken from a client
// body; everything else is caller-supplied.
type Room struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Address       string   `json:"address"`
	Description   string   `json:"description,omitempty"`
	Rent          float64  `json:"rent"`
	Bedrooms      float64  `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	SquareFeet    *float64 `json:"squareFeet,omitempty"`
	Amenities     []string `json:"amenities"`
	AvailableDate string   `json:"availableDate,omitempty"`
	ContactEmail  string   `json:"contactEmail"`
	ContactPhone  string   `json:"contactPhone,omitempty"`
	PhotoURL      string   `json:"photoUrl,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
	OwnerID       string   `json:"ownerId"`
	OwnerName     string   `json:"ownerName"`
}

// RoomPatch is a typed partial room. A nil pointer means the field was not
// present in the request body; unknown body fields are dropped by the JSON
// decoder, so the struct doubles as the update allow-list.
type RoomPatch struct {
	Title         *string   `json:"title"`
	Address       *string   `json:"address"`
	Description   *string   `json:"description"`
	Rent          *float64  `json:"rent"`
	Bedrooms      *float64  `json:"bedrooms"`
	Bathrooms     *float64  `json:"bathrooms"`
	SquareFeet    *float64  `json:"squareFeet"`
	Amenities     *[]string `json:"amenities"`
	AvailableDate *string   `json:"availableDate"`
	ContactEmail  *string   `json:"contactEmail"`
	ContactPhone  *string   `json:"contactPhone"`
	PhotoURL      *string   `json:"photoUrl"`
	IsAvailable   *bool     `json:"isAvailable"`
}

// Empty reports whether the patch carries no allow-listed field at all.
func (p *RoomPatch) Empty() bool {
	return p.Title == nil &&
		p.Address == nil &&
		p.Description == nil &&
		p.Rent == nil &&
		p.Bedrooms == nil &&
		p.Bathrooms == nil &&
		p.SquareFeet == nil &&
		p.Amenities == nil &&
		p.AvailableDate == nil &&
		p.ContactEmail == nil &&
		p.ContactPhone == nil &&
		p.PhotoURL == nil &&
		p.IsAvailable == nil
}

// Materialize builds a full Room from a create body. isAvailable defaults to
// true and amenities to an empty list when the body omits them.
func (p *RoomPatch) Materialize() *Room {
	room := &Room{
		Amenities:   []string{},
		IsAvailable: true,
	}
	if p.Title != nil {
		room.Title = *p.Title
	}
	if p.Address != nil {
		room.Address = *p.Address
	}
	if p.Description != nil {
		room.Description = *p.Description
	}
	if p.Rent != nil {
		room.Rent = *p.Rent
	}
	if p.Bedrooms != nil {
		room.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		room.Bathrooms = *p.Bathrooms
	}
	if p.SquareFeet != nil {
		room.SquareFeet = p.SquareFeet
	}
	if p.Amenities != nil {
		room.Amenities = *p.Amenities
	}
	if p.AvailableDate != nil {
		room.AvailableDate = *p.AvailableDate
	}
	if p.ContactEmail != nil {
		room.ContactEmail = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		room.ContactPhone = *p.ContactPhone
	}
	if p.PhotoURL != nil {
		room.PhotoURL = *p.PhotoURL
	}
	if p.IsAvailable != nil {
		room.IsAvailable = *p.IsAvailable
	}
	return room
}
