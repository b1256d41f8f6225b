package teleconsult

import "testing"

func TestRoomIDDeterministic(t *testing.T) {
	a := RoomID(42)
	b := RoomID(42)
	if a != b {
		t.Errorf("same appointment produced %s and %s", a, b)
	}
	if len(a) != 36 {
		t.Errorf("room id %q is not a uuid string", a)
	}
}

func TestRoomIDDistinctPerAppointment(t *testing.T) {
	seen := map[string]uint{}
	for _, id := range []uint{1, 2, 42, 1000} {
		room := RoomID(id)
		if prev, ok := seen[room]; ok {
			t.Errorf("appointments %d and %d share room id %s", prev, id, room)
		}
		seen[room] = id
	}
}
