package model

// User holds the local user data relevant to the application (outside of firebase)
type User struct {
	Id          string `db:"firebase_id" json:"id"`
	DisplayName string `db:"display_name" json:"displayName"`
	IsAdmin     bool   `db:"is_admin" json:"isAdmin"`
	Avatar      string `db:"avatar" json:"avatar"`
}

type DisplayableUser struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

func (u *User) Displayable() *DisplayableUser {
	return &DisplayableUser{
		Id:          u.Id,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
