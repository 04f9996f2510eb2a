package session

import "strings"

// Profile is the cached identity snapshot stored under profile_data.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
	CreatedAt string `json:"createdAt"`
}

// First returns the first name, falling back to the first word of the full
// name when the profile predates the split-name fields.
func (p Profile) First() string {
	if p.FirstName != "" {
		return p.FirstName
	}
	parts := strings.Fields(p.FullName)
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// Last returns the last name, falling back to everything after the first
// word of the full name.
func (p Profile) Last() string {
	if p.LastName != "" {
		return p.LastName
	}
	parts := strings.Fields(p.FullName)
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

// DisplayName returns the best available human-readable name.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	return p.Email
}
