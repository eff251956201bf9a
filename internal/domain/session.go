package domain

// Session binds a connection to a room code and a self-asserted display
// name. It is established by create-room or join-room and threaded
// explicitly through every presence and message operation; nothing here
// authenticates the name.
type Session struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

func (s Session) Valid() bool {
	return s.Room != "" && s.Name != ""
}
