package models

// Role identifies the kind of actor behind a request.
type Role string

const (
	RoleClient     Role = "client"
	RoleAdvisor    Role = "advisor"
	RoleSuperAdmin Role = "super_admin"
)

// Principal is the already-authenticated actor supplied by the identity
// layer. The scheduling engine never authenticates; it only authorizes
// against this.
type Principal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
