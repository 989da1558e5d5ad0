package design

import "strings"

// Room enumerates interior room categories. Rooms apply only to the interior
// option; the other options carry a free-text type selection instead.
type Room string

const (
	RoomKitchen    Room = "Kitchen"
	RoomBedroom    Room = "Bedroom"
	RoomBathroom   Room = "Bathroom"
	RoomLivingRoom Room = "Living room"
	RoomDiningRoom Room = "Dinning room"
	RoomOffice     Room = "Office"
	RoomStudy      Room = "Study room"
	RoomGaming     Room = "Gaming room"
	RoomKids       Room = "Kids room"
	RoomAttic      Room = "Attic"
	RoomToilet     Room = "Toilet"
	RoomBalcony    Room = "Balcony"
	RoomHallway    Room = "Hallway"
	RoomLaundry    Room = "Laundry room"
	RoomGarage     Room = "Garage"
)

// Rooms lists every interior room in presentation order.
func Rooms() []Room {
	return []Room{
		RoomKitchen, RoomBedroom, RoomBathroom, RoomLivingRoom, RoomDiningRoom,
		RoomOffice, RoomStudy, RoomGaming, RoomKids, RoomAttic, RoomToilet,
		RoomBalcony, RoomHallway, RoomLaundry, RoomGarage,
	}
}

// Name returns the display name used inside compiled prompts.
func (r Room) Name() string {
	return string(r)
}

// ParseRoom resolves free-form input into a known room, case-insensitively.
func ParseRoom(s string) (Room, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Rooms() {
		if strings.ToLower(string(r)) == needle {
			return r, true
		}
	}
	return "", false
}
