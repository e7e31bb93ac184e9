package auth

type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePhysician     Role = "physician"
	RolePatient       Role = "patient"
)

// User is a credential record. Password holds the bcrypt hash in storage and
// is redacted before the record leaves this package.
type User struct {
	ID       int64
	Login    string
	Password string
	Name     string
	Role     Role
}
