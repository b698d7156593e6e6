package types

// Users

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AuthResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// Rooms

type Room struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

type RoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type UpdateRoomRequest struct {
	Name string `json:"name"`
}

// Games

type Game struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateGameRequest struct {
	Title string `json:"title"`
}

// Participants

type ParticipantRole string

const (
	RoleOwner  ParticipantRole = "owner"
	RoleMember ParticipantRole = "member"
)

type ParticipantsResponse struct {
	Users []User            `json:"users"`
	Roles []ParticipantRole `json:"roles"`
}

type InviteParticipantRequest struct {
	Name string `json:"name"`
}

// Votes

type Vote struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type VotesResponse struct {
	Votes []Vote `json:"votes"`
}

type AddVoteRequest struct {
	GameID string `json:"game_id"`
}

// ErrorBody is the structured error payload the service returns with
// non-2xx statuses.
type ErrorBody struct {
	Error string `json:"error"`
}
