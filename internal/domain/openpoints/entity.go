package openpoints

import "time"

// PointStatus is a free-moving traffic-light field; any value may change to
// any other at any time.
type PointStatus string

const (
	StatusRed    PointStatus = "Red"
	StatusYellow PointStatus = "Yellow"
	StatusOrange PointStatus = "Orange"
	StatusGreen  PointStatus = "Green"
)

func (s PointStatus) Valid() bool {
	switch s {
	case StatusRed, StatusYellow, StatusOrange, StatusGreen:
		return true
	}
	return false
}

type PointPriority string

const (
	PriorityEmergency PointPriority = "Emergency"
	PriorityHigh      PointPriority = "High"
	PriorityMedium    PointPriority = "Medium"
	PriorityLow       PointPriority = "Low"
)

func (p PointPriority) Valid() bool {
	switch p {
	case PriorityEmergency, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Project is a scoped open-point list shared by a member team.
type Project struct {
	ID          string
	Name        string
	Description *string
	OwnerID     string
	MemberIDs   []string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	OwnerName   *string
	MemberNames []string
}

// Point is one tracked item. Status and priority are independent fields
// with no transition constraints between them.
type Point struct {
	ID             string
	ProjectID      string
	Description    string
	Responsibility string
	Status         PointStatus
	Priority       PointPriority
	TargetDate     *time.Time
	Remarks        *string
	CreatedBy      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMember reports whether a user belongs to the project team (the owner is
// always a member).
func (p Project) IsMember(userID string) bool {
	if p.OwnerID == userID {
		return true
	}
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
