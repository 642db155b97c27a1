package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomsOf(t *testing.T, raw string) []Room {
	t.Helper()
	list, err := RequireList(mustDecode(t, raw))
	require.NoError(t, err)
	rooms, err := RoomsFrom(list)
	require.NoError(t, err)
	return rooms
}

func TestRoomsFrom(t *testing.T) {
	rooms := roomsOf(t, `[{"id": 3, "name": "General"}, {"id": "abc"}, {"name": 5}]`)
	require.Len(t, rooms, 3)

	assert.Equal(t, Room{ID: "3", Name: "General", Raw: rooms[0].Raw}, rooms[0])
	assert.Equal(t, "abc", rooms[1].ID)
	assert.Equal(t, "", rooms[1].Name)
	assert.Equal(t, "", rooms[2].ID)
	assert.Equal(t, "", rooms[2].Name, "non-string names are ignored")
}

func TestRoomsFrom_NonObject(t *testing.T) {
	list, err := RequireList(mustDecode(t, `[{"id":1}, "oops"]`))
	require.NoError(t, err)

	_, err = RoomsFrom(list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "room 1")
}

func TestSelectRoom(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		target string
		wantID string
		wantOK bool
	}{
		{
			name:   "exact match",
			raw:    `[{"id":1,"name":"General"},{"id":2,"name":"Player Support 2"}]`,
			target: "Player Support 2",
			wantID: "2",
			wantOK: true,
		},
		{
			name:   "substring match",
			raw:    `[{"id":1,"name":"General"},{"id":9,"name":"EU Player Support 2 (night)"}]`,
			target: "Player Support 2",
			wantID: "9",
			wantOK: true,
		},
		{
			name:   "first match wins",
			raw:    `[{"id":4,"name":"Player Support 2"},{"id":5,"name":"Player Support 2b"}]`,
			target: "Player Support 2",
			wantID: "4",
			wantOK: true,
		},
		{
			name:   "case sensitive falls back to first",
			raw:    `[{"id":1,"name":"General"},{"id":2,"name":"player support 2"}]`,
			target: "Player Support 2",
			wantID: "1",
			wantOK: true,
		},
		{
			name:   "no match falls back to first",
			raw:    `[{"id":7,"name":"Billing"},{"id":8,"name":"Player Support 1"}]`,
			target: "Player Support 2",
			wantID: "7",
			wantOK: true,
		},
		{
			name:   "empty list",
			raw:    `[]`,
			target: "Player Support 2",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, ok := SelectRoom(roomsOf(t, tt.raw), tt.target)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, room.ID)
		})
	}
}
