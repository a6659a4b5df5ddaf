package transport

const (
	OpCreateChatItem       = "createChatItem"
	OpChannelSystemMessage = "channelSystemMessage"

	queryCreateChatItem = `mutation createChatItem($id: String!, $content: String!, $channelId: String, $originId: String, $createdAt: Long!) {
  createChatItem(id: $id, content: $content, channelId: $channelId, originId: $originId, createdAt: $createdAt)
}`
	queryChannelSystemMessage = `mutation channelSystemMessage($type: String!, $payload: String!) {
  channelSystemMessage(type: $type, payload: $payload)
}`
)

// ChatItemVariables carries one chat item. Content is the JSON encoded message content.
// OriginID is the author when a leader relays on their behalf.
type ChatItemVariables struct {
	ID        string `json:"id" validate:"required"`
	Content   string `json:"content" validate:"required"`
	ChannelID string `json:"channelId,omitempty"`
	OriginID  string `json:"originId,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type SystemMessageVariables struct {
	Type    string `json:"type" validate:"required"`
	Payload string `json:"payload" validate:"required"`
}

func NewCreateChatItemRequest(vars ChatItemVariables) (Request, error) {
	return NewRequest(OpCreateChatItem, queryCreateChatItem, vars)
}

func NewSystemMessageRequest(vars SystemMessageVariables) (Request, error) {
	return NewRequest(OpChannelSystemMessage, queryChannelSystemMessage, vars)
}
