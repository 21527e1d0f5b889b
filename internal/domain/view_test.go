package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownViews(t *testing.T) {
	views := KnownViews()
	assert.Len(t, views, 14)
	for _, v := range views {
		assert.True(t, v.IsKnown(), v)
	}
	assert.False(t, View("settings").IsKnown())

	views[0] = "mutated"
	assert.Equal(t, ViewHome, KnownViews()[0])
}

func TestViewAccess(t *testing.T) {
	assert.Equal(t, AccessPublic, ViewHelp.Access())
	assert.Equal(t, AccessAuthenticated, ViewSubmitReport.Access())
	assert.Equal(t, AccessAdmin, ViewAlerts.Access())
	assert.Equal(t, AccessPublic, View("nowhere").Access())
}

func TestLandingView(t *testing.T) {
	assert.Equal(t, ViewAdminDashboard, LandingView(RoleAdmin))
	assert.Equal(t, ViewUserDashboard, LandingView(RoleUser))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

func TestFacilityAvailabilityPercent(t *testing.T) {
	assert.InDelta(t, 24.0, Facility{Capacity: 500, Available: 120}.AvailabilityPercent(), 0.001)
	assert.Zero(t, Facility{}.AvailabilityPercent())
}
