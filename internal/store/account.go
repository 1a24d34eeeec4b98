package store

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// DefaultRole is what GetRole falls back to for unknown usernames.
const DefaultRole = RolePatient

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Account is one user's record in the store file. The hash is serialized
// under "password" because that is the field name the app's pages read;
// the value is always a bcrypt hash, never the plaintext.
type Account struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password,omitempty"`
	Role         Role   `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Sanitized returns a copy with the password hash stripped, safe to hand
// to callers.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}

// document is the shape of the backing file: a single top-level "users"
// array in insertion order.
type document struct {
	Users []Account `json:"users"`
}
