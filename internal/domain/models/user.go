package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                  int     `json:"id"`
	Username            string  `json:"username"`
	PasswordHash        string  `json:"-"`
	DisplayName         string  `json:"display_name"`
	Role                string  `json:"role"`
	Bio                 string  `json:"bio"`
	FavoriteDestination string  `json:"favorite_destination"`
	Goals               string  `json:"goals"`
	AvatarKey           *string `json:"avatar_key,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

// Profile holds the user-editable profile fields.
type Profile struct {
	DisplayName         string `json:"display_name"`
	Bio                 string `json:"bio"`
	FavoriteDestination string `json:"favorite_destination"`
	Goals               string `json:"goals"`
}
