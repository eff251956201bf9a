package rooms

// createRoomRequest carries the display name of the room creator.
type createRoomRequest struct {
	Name string `json:"name"`
}

// joinRoomRequest carries the display name and the code of the room to join.
type joinRoomRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// sessionResponse is returned by both create-room and join-room: the room
// code and the display name now bound to this session.
type sessionResponse struct {
	Room string `json:"room"`
	Name string `json:"name"`
}
