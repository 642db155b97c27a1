package inspect

import (
	"fmt"
	"strings"
)

// Room is the subset of a room record the probe relies on.
type Room struct {
	ID   string
	Name string
	Raw  map[string]any
}

// RoomsFrom converts a decoded list into rooms. Every entry must be an object.
func RoomsFrom(list []any) ([]Room, error) {
	rooms := make([]Room, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("room %d: expected object, got %s", i, KindOf(item))
		}

		name, _ := obj["name"].(string)
		rooms = append(rooms, Room{
			ID:   Scalar(obj["id"]),
			Name: name,
			Raw:  obj,
		})
	}
	return rooms, nil
}

// SelectRoom returns the first room whose name contains target, falling back
// to the first room. It reports false only when rooms is empty.
func SelectRoom(rooms []Room, target string) (Room, bool) {
	if len(rooms) == 0 {
		return Room{}, false
	}

	for _, r := range rooms {
		if strings.Contains(r.Name, target) {
			return r, true
		}
	}

	return rooms[0], true
}
