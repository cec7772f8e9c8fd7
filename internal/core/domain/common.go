package domain

// Actor identifies who is performing an operation. It is supplied by the
// authentication layer and is never trusted from request bodies.
type Actor struct {
	UserID      string `json:"userID"`
	CharacterID *int64 `json:"characterID,omitempty"` // nil for the DM or for users without a character
	IsDM        bool   `json:"isDM"`
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
