package chathub

import "github.com/samber/lo"

// Rooms maps a report id to the sessions currently inside its chat. A
// session is in at most one room; rooms exist while they have members.
type Rooms struct {
	members map[string]map[string]Client
}

func NewRooms() *Rooms {
	return &Rooms{members: make(map[string]map[string]Client)}
}

// Join moves c into reportID's room, leaving any previous room first.
func (r *Rooms) Join(c Client, reportID string) {
	r.Leave(c)
	room, ok := r.members[reportID]
	if !ok {
		room = make(map[string]Client)
		r.members[reportID] = room
	}
	room[c.GetSessionID()] = c
	c.SetRoomID(reportID)
}

// Leave removes c from its current room, if any.
func (r *Rooms) Leave(c Client) {
	reportID := c.GetRoomID()
	if reportID == "" {
		return
	}
	if room, ok := r.members[reportID]; ok {
		delete(room, c.GetSessionID())
		if len(room) == 0 {
			delete(r.members, reportID)
		}
	}
	c.SetRoomID("")
}

func (r *Rooms) Members(reportID string) []Client {
	return lo.Values(r.members[reportID])
}

func (r *Rooms) Count(reportID string) int {
	return len(r.members[reportID])
}
