package models

// FriendRequestStatus tracks the lifecycle of a friend request.
type FriendRequestStatus string

const (
	RequestPending  FriendRequestStatus = "pending"
	RequestAccepted FriendRequestStatus = "accepted"
	RequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directed edge in the friend graph. An accepted
// request in either direction makes two users friends.
type FriendRequest struct {
	ID        string              `json:"id"`
	FromUser  string              `json:"from_user"`
	ToUser    string              `json:"to_user"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt int64               `json:"created_at"`
}

// PendingRequest is a pending friend request joined with the sender's
// display fields for list rendering.
type PendingRequest struct {
	ID        string `json:"id"`
	FromUser  string `json:"from_user"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// SendFriendRequest is the payload for POST /friend-request/send.
type SendFriendRequest struct {
	FromUser string `json:"from_user"`
	ToUser   string `json:"to_user"`
}

// RespondFriendRequest is the payload for POST /friend-request/respond.
type RespondFriendRequest struct {
	RequestID string `json:"request_id"`
	Accept    bool   `json:"accept"`
}

// Group is a named chat group.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
	Members   []string `json:"members,omitempty"`
}

// GroupMessage is one message posted to a group.
type GroupMessage struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	SenderID  string `json:"sender_id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// CreateGroupRequest is the payload for POST /groups/create. The creator
// is always a member, listed or not.
type CreateGroupRequest struct {
	Name      string   `json:"name"`
	CreatedBy string   `json:"created_by"`
	Members   []string `json:"members,omitempty"`
}

// SendGroupMessage is the payload for POST /groups/send.
type SendGroupMessage struct {
	GroupID  string `json:"group_id"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

// P2PMessage is one direct message between two users.
type P2PMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

// SendP2PRequest is the payload for POST /p2p/send.
type SendP2PRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// P2PConversationRequest is the payload for POST /p2p/messages: the full
// exchange between two users, both directions.
type P2PConversationRequest struct {
	UserID string `json:"user_id"`
	PeerID string `json:"peer_id"`
}
