package types

// Session is the signed-in operator. Any non-empty email and org are accepted.
type Session struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Org   Org    `json:"org"`
}
