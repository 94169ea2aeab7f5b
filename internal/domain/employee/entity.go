package employee

import (
	"time"
)

type Employee struct {
	ID              string
	FullName        string
	Email           string
	PhoneNumber     string
	Position        Position
	Department      string
	Experience      float64
	ProfileImageURL *string
	DateOfJoining   time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const DefaultDepartment = "General"

// Position is shared by candidates and employees.
type Position string

const (
	PositionIntern   Position = "Intern"
	PositionFullTime Position = "Full Time"
	PositionJunior   Position = "Junior"
	PositionSenior   Position = "Senior"
	PositionTeamLead Position = "Team Lead"
)

var Positions = []string{
	string(PositionIntern),
	string(PositionFullTime),
	string(PositionJunior),
	string(PositionSenior),
	string(PositionTeamLead),
}

func (p Position) IsValid() bool {
	switch p {
	case PositionIntern, PositionFullTime, PositionJunior, PositionSenior, PositionTeamLead:
		return true
	}
	return false
}
