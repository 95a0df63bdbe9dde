package domain

// User is a stored account. PassHash never leaves the storage/service layers.
type User struct {
	Id       string `json:"_id"`
	Username string `json:"username"`
	PassHash string `json:"-"`
	FullName string `json:"fullname"`
	ImgUrl   string `json:"imgUrl,omitempty"`
	Email    string `json:"email,omitempty"`
	Color    string `json:"color,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
	Score    int    `json:"score"`
}

// MiniUser is the identity claim embedded in login tokens and stamped on
// owned documents. Mutating operations take it as an explicit actor
// parameter instead of ambient per-request state.
type MiniUser struct {
	Id       string `json:"_id"`
	FullName string `json:"fullname"`
	ImgUrl   string `json:"imgUrl,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
	Score    int    `json:"score,omitempty"`
}

// Mini strips a user down to the claim carried by tokens and owner stamps.
func (u User) Mini() MiniUser {
	return MiniUser{Id: u.Id, FullName: u.FullName, ImgUrl: u.ImgUrl, IsAdmin: u.IsAdmin, Score: u.Score}
}
