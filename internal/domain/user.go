package domain

type UserRole string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleDonor   UserRole = "DONOR"
	UserRoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"` // fixed at signup, there is no role migration flow
	// Role-specific profile fields. Students fill school/field of study,
	// donors may fill an organization name.
	School       string `json:"school,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Organization string `json:"organization,omitempty"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

// Principal identifies the authenticated caller of a service operation.
// It is passed explicitly into every operation, never read from ambient
// context or session state.
type Principal struct {
	UserID int32    `json:"user_id"`
	Role   UserRole `json:"role"`
}

func (p Principal) Is(role UserRole) bool {
	return p.Role == role
}
