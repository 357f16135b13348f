package entity

// Role represents the type of role a user can have in the system.
// Role checks on the client are advisory UI gating only; the backend
// enforces authorization on every request.
type Role string

const (
	// RoleSuperadmin indicates the business owner role.
	RoleSuperadmin Role = "superadmin"
	// RoleAdmin indicates an administrator role.
	RoleAdmin Role = "admin"
	// RoleStaff indicates a staff member role.
	RoleStaff Role = "staff"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

// Capability names a client-side action a role is allowed to see.
type Capability string

const (
	CapManageUsers    Capability = "manage-users"
	CapManageWorks    Capability = "manage-works"
	CapManageMenu     Capability = "manage-menu"
	CapManageGallery  Capability = "manage-gallery"
	CapManageWeddings Capability = "manage-weddings"
	CapRecordPayments Capability = "record-payments"
	CapViewDashboard  Capability = "view-dashboard"
)

// Capabilities is the set of actions resolved for a role.
type Capabilities map[Capability]struct{}

// Has reports whether the capability is in the set.
func (c Capabilities) Has(cap Capability) bool {
	_, ok := c[cap]
	return ok
}

// CapabilitiesFor resolves the advisory capability set for a role. All
// role-based gating goes through this single function instead of ad-hoc
// role string comparisons.
func CapabilitiesFor(role Role) Capabilities {
	caps := Capabilities{}
	switch role {
	case RoleSuperadmin:
		for _, c := range []Capability{
			CapManageUsers, CapManageWorks, CapManageMenu,
			CapManageGallery, CapManageWeddings, CapRecordPayments,
			CapViewDashboard,
		} {
			caps[c] = struct{}{}
		}
	case RoleAdmin:
		for _, c := range []Capability{
			CapManageWorks, CapManageMenu, CapManageGallery,
			CapManageWeddings, CapRecordPayments, CapViewDashboard,
		} {
			caps[c] = struct{}{}
		}
	case RoleStaff:
		caps[CapViewDashboard] = struct{}{}
	}

	return caps
}
