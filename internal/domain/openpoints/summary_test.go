package openpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSummary(t *testing.T) {
	points := []Point{
		{Responsibility: "Asha", Status: StatusRed},
		{Responsibility: "Asha", Status: StatusGreen},
		{Responsibility: "Asha", Status: StatusGreen},
		{Responsibility: "Ravi", Status: StatusOrange},
		{Responsibility: "Ravi", Status: StatusYellow},
	}

	summary := CalculateSummary(points)

	assert.Len(t, summary.ByResponsibility, 2)
	assert.Equal(t, StatusCounts{Red: 1, Green: 2, Total: 3}, summary.ByResponsibility["Asha"])
	assert.Equal(t, StatusCounts{Orange: 1, Yellow: 1, Total: 2}, summary.ByResponsibility["Ravi"])
	assert.Equal(t, StatusCounts{Red: 1, Yellow: 1, Orange: 1, Green: 2, Total: 5}, summary.Totals)
}

func TestCalculateSummaryOrderIndependent(t *testing.T) {
	forward := []Point{
		{Responsibility: "Asha", Status: StatusRed},
		{Responsibility: "Ravi", Status: StatusGreen},
		{Responsibility: "Asha", Status: StatusYellow},
	}
	reversed := []Point{forward[2], forward[1], forward[0]}

	assert.Equal(t, CalculateSummary(forward), CalculateSummary(reversed))
}

func TestCalculateSummaryEmpty(t *testing.T) {
	summary := CalculateSummary(nil)
	assert.Empty(t, summary.ByResponsibility)
	assert.Equal(t, StatusCounts{}, summary.Totals)
}

func TestProjectMembership(t *testing.T) {
	p := Project{OwnerID: "owner", MemberIDs: []string{"a", "b"}}

	assert.True(t, p.IsMember("owner"))
	assert.True(t, p.IsMember("a"))
	assert.False(t, p.IsMember("stranger"))
}
