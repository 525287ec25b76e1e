package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SubmitMoveRequest is the request body for submitting a move. The
// coordinates are pointers so an absent field is distinguishable from
// a shot at 0; handlers must reject requests that omit either one.
type SubmitMoveRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}
