package auth

import "propmatch_backend/internal/models"

// Capability names a single action a role may perform.
type Capability string

const (
	CapViewOwnProfile      Capability = "profile:read:self"
	CapCreateJob           Capability = "jobs:create"
	CapManageOwnJobs       Capability = "jobs:write:self"
	CapReadJob             Capability = "jobs:read"
	CapListCustomerJobs    Capability = "jobs:list:customer"
	CapViewApplicableJobs  Capability = "jobs:read:applicable"
	CapManageProfessional  Capability = "professional:write:self"
	CapVerifyProfessionals Capability = "professionals:verify"
	CapAdminRead           Capability = "admin:read"
)

// Permissions is the closed role -> capability table.
var Permissions = map[models.UserRole][]Capability{
	models.UserRoleAdmin: {
		CapViewOwnProfile,
		CapReadJob,
		CapListCustomerJobs,
		CapManageOwnJobs,
		CapVerifyProfessionals,
		CapAdminRead,
	},
	models.UserRoleCustomer: {
		CapViewOwnProfile,
		CapCreateJob,
		CapManageOwnJobs,
		CapReadJob,
		CapListCustomerJobs,
	},
	models.UserRoleProfessional: {
		CapViewOwnProfile,
		CapViewApplicableJobs,
		CapManageProfessional,
	},
}

// Can reports whether role holds capability. Unknown roles hold nothing.
func Can(role models.UserRole, capability Capability) bool {
	for _, c := range Permissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller, built from a verified token.
type Principal struct {
	UserID string
	Email  string
	Role   models.UserRole
}

func (p *Principal) Can(capability Capability) bool {
	return p != nil && Can(p.Role, capability)
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.UserRoleAdmin
}
