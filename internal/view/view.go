// Package view computes the visible page regions for a resolved session.
// Region visibility is a pure function of role: handlers decide which panels
// to load from the region set, and templates render only what the set names.
package view

import (
	"github.com/Yigit-Sert/library-portal/internal/model"
)

// Region is a top-level page area whose visibility is gated by role.
type Region string

// Top-level regions.
const (
	RegionPublicCatalog      Region = "public-catalog"
	RegionMemberDashboard    Region = "member-dashboard"
	RegionPersonnelDashboard Region = "personnel-dashboard"
	RegionAdminDashboard     Region = "admin-dashboard"
)

// RegionSet is the set of regions visible for one page render.
type RegionSet map[Region]bool

// Has reports whether the region is visible.
func (s RegionSet) Has(r Region) bool {
	return s[r]
}

// Regions returns the visible region set for a session. The public catalog
// is visible for every role; dashboards stack by role, with ADMIN seeing the
// personnel dashboard as well as its own.
func Regions(session *model.Session) RegionSet {
	regions := RegionSet{RegionPublicCatalog: true}

	if session == nil {
		return regions
	}

	switch session.Role {
	case model.RoleMember:
		regions[RegionMemberDashboard] = true
	case model.RolePersonnel:
		regions[RegionPersonnelDashboard] = true
	case model.RoleAdmin:
		regions[RegionPersonnelDashboard] = true
		regions[RegionAdminDashboard] = true
	}

	return regions
}

// CatalogAction is what the action column of the public catalog offers
// for the current session.
type CatalogAction string

// Catalog action variants.
const (
	CatalogActionLogin   CatalogAction = "login"
	CatalogActionRequest CatalogAction = "request"
	CatalogActionStaff   CatalogAction = "staff"
)

// ActionForCatalog returns the catalog action for a session: anonymous
// visitors are invited to log in, members may request books, and staff get
// a read-only label.
func ActionForCatalog(session *model.Session) CatalogAction {
	switch {
	case session == nil:
		return CatalogActionLogin
	case session.Role == model.RoleMember:
		return CatalogActionRequest
	default:
		return CatalogActionStaff
	}
}
