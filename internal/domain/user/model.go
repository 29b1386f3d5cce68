package user

import "condoadmin/internal/storage"

// User is the authentication view of a "usuarios" record.
type User struct {
	ID           string
	Name         string
	Email        string
	ProfileID    string
	PasswordHash string // хэш bcrypt
}

type Registration struct {
	Name      string
	Email     string
	Password  string
	ProfileID string
}

func FromRecord(rec storage.Record) User {
	str := func(key string) string {
		s, _ := rec[key].(string)
		return s
	}
	return User{
		ID:           rec.ID(),
		Name:         str("name"),
		Email:        str("email"),
		ProfileID:    storage.IDString(rec["profileId"]),
		PasswordHash: str("password"),
	}
}
