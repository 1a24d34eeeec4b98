package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthassist/internal/audit"
	"healthassist/internal/logger"
	"healthassist/internal/secure"
)

// Result messages surfaced to callers alongside the ok flag. The strings
// are part of the caller contract; the login and management pages display
// them verbatim.
const (
	MsgDuplicateUser = "Username already exists"
	MsgUserNotFound  = "User not found"
	MsgSaveFailed    = "Failed to save user data"
	MsgCreated       = "User created successfully"
	MsgUpdated       = "User updated successfully"
	MsgDeleted       = "User deleted successfully"
)

// Store is a JSON-file-backed account store. Every operation re-reads the
// backing file and mutations rewrite it whole; no state is cached across
// calls, so another process writing the same file is picked up on the next
// operation.
type Store struct {
	path  string
	trail *audit.Recorder
	actor string
}

func New(path string) *Store { return &Store{path: path} }

// WithAudit attaches a recorder; successful mutations get an audit entry.
func (s *Store) WithAudit(trail *audit.Recorder) *Store {
	s.trail = trail
	return s
}

// SetActor names the logged-in user on whose behalf mutations run, for the
// audit trail only.
func (s *Store) SetActor(username string) { s.actor = username }

func (s *Store) Path() string { return s.path }

// Ensure creates the backing file with the three default accounts when it
// does not exist yet. An existing file is left untouched.
func (s *Store) Ensure(adminPass, doctorPass, patientPass string) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir store dir: %w", err)
	}

	seeds := []struct {
		username, password, name, email string
		role                            Role
	}{
		{"admin", adminPass, "System Administrator", "admin@healthassist.ai", RoleAdmin},
		{"doctor", doctorPass, "Dr. Jane Smith", "doctor@healthassist.ai", RoleDoctor},
		{"patient", patientPass, "John Doe", "patient@healthassist.ai", RolePatient},
	}

	now := time.Now().Format(time.RFC3339)
	var doc document
	for _, sd := range seeds {
		hash, err := secure.HashPassword(sd.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		doc.Users = append(doc.Users, Account{
			Username:     sd.username,
			PasswordHash: hash,
			Role:         sd.role,
			Name:         sd.name,
			Email:        sd.email,
			CreatedAt:    now,
		})
	}

	if !s.persist(doc) {
		return fmt.Errorf("write store file %s", s.path)
	}
	logger.Infof("Seeded %d default accounts into %s", len(doc.Users), s.path)
	return nil
}

// load reads the current document. A missing or unparsable file resolves
// to an empty document so read paths never fail.
func (s *Store) load() document {
	var doc document
	b, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		logger.Warnf("Store file %s is not valid JSON: %v", s.path, err)
		return document{}
	}
	return doc
}

func (s *Store) persist(doc document) bool {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return false
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		logger.Errorf("Cannot write store file %s: %v", s.path, err)
		return false
	}
	return true
}

func (s *Store) record(action, username, detail string) {
	if s.trail == nil {
		return
	}
	if err := s.trail.Record(action, username, s.actor, detail); err != nil {
		logger.Warnf("Audit record failed: %v", err)
	}
}

// Authenticate reports whether the username exists and the password
// matches its stored hash. Any mismatch, unknown user or unreadable store
// yields false. No side effects.
func (s *Store) Authenticate(username, password string) bool {
	for _, u := range s.load().Users {
		if u.Username == username {
			return secure.CheckPassword(password, u.PasswordHash)
		}
	}
	return false
}

// GetAccount returns a sanitized copy of the record, or false when the
// username is unknown.
func (s *Store) GetAccount(username string) (Account, bool) {
	for _, u := range s.load().Users {
		if u.Username == username {
			return u.Sanitized(), true
		}
	}
	return Account{}, false
}

// GetRole never fails; unknown usernames get DefaultRole.
func (s *Store) GetRole(username string) Role {
	if acc, ok := s.GetAccount(username); ok && acc.Role != "" {
		return acc.Role
	}
	return DefaultRole
}

// CreateAccount appends a new record. Duplicate usernames are declined
// without touching the file.
func (s *Store) CreateAccount(username, password string, role Role, name, email string) (bool, string) {
	doc := s.load()
	for _, u := range doc.Users {
		if u.Username == username {
			return false, MsgDuplicateUser
		}
	}

	hash, err := secure.HashPassword(password)
	if err != nil {
		return false, MsgSaveFailed
	}
	doc.Users = append(doc.Users, Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
		Email:        email,
		CreatedAt:    time.Now().Format(time.RFC3339),
	})

	if !s.persist(doc) {
		return false, MsgSaveFailed
	}
	s.record("create", username, "role="+string(role))
	return true, MsgCreated
}

// updatableFields is the allow-list for UpdateAccount; anything else in
// the updates map is ignored.
var updatableFields = map[string]bool{
	"name":     true,
	"email":    true,
	"role":     true,
	"password": true,
}

// UpdateAccount applies the allow-listed fields of updates to the matching
// record. A "password" value is re-hashed before it is stored. updated_at
// is refreshed on success; created_at never changes.
func (s *Store) UpdateAccount(username string, updates map[string]string) (bool, string) {
	doc := s.load()
	for i, u := range doc.Users {
		if u.Username != username {
			continue
		}
		for field, value := range updates {
			if !updatableFields[field] {
				continue
			}
			switch field {
			case "name":
				doc.Users[i].Name = value
			case "email":
				doc.Users[i].Email = value
			case "role":
				doc.Users[i].Role = Role(value)
			case "password":
				hash, err := secure.HashPassword(value)
				if err != nil {
					return false, MsgSaveFailed
				}
				doc.Users[i].PasswordHash = hash
			}
		}
		doc.Users[i].UpdatedAt = time.Now().Format(time.RFC3339)

		if !s.persist(doc) {
			return false, MsgSaveFailed
		}
		s.record("update", username, fmt.Sprintf("%d fields", len(updates)))
		return true, MsgUpdated
	}
	return false, MsgUserNotFound
}

// DeleteAccount removes the matching record, if any.
func (s *Store) DeleteAccount(username string) (bool, string) {
	doc := s.load()
	kept := doc.Users[:0:0]
	for _, u := range doc.Users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(doc.Users) {
		return false, MsgUserNotFound
	}
	doc.Users = kept

	if !s.persist(doc) {
		return false, MsgSaveFailed
	}
	s.record("delete", username, "")
	return true, MsgDeleted
}

// ListAccounts returns sanitized records in file order. An empty
// roleFilter means all accounts.
func (s *Store) ListAccounts(roleFilter Role) []Account {
	var out []Account
	for _, u := range s.load().Users {
		if roleFilter != "" && u.Role != roleFilter {
			continue
		}
		out = append(out, u.Sanitized())
	}
	return out
}
