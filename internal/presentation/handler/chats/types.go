package chats

type saveChatRequest struct {
	Room string `json:"room"`
}

type saveChatResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
