package models

import "strings"

type UserRole string
type ProfessionalType string
type VerificationStatus string
type JobType string
type JobStatus string
type AUState string

const (
	UserRoleCustomer     UserRole = "Customer"
	UserRoleProfessional UserRole = "Professional"
	UserRoleAdmin        UserRole = "Admin"

	ProfessionalTypeAdvocate     ProfessionalType = "Advocate"
	ProfessionalTypeBroker       ProfessionalType = "Broker"
	ProfessionalTypeConveyancer  ProfessionalType = "Conveyancer"
	ProfessionalTypeBuildAndPest ProfessionalType = "BuildAndPest"

	VerificationStatusUnverified VerificationStatus = "Unverified"
	VerificationStatusVerified   VerificationStatus = "Verified"
	VerificationStatusRejected   VerificationStatus = "Rejected"

	JobTypeBuy  JobType = "Buy"
	JobTypeSell JobType = "Sell"

	JobStatusOpen      JobStatus = "Open"
	JobStatusMatched   JobStatus = "Matched"
	JobStatusFinalised JobStatus = "Finalised"
	JobStatusClosed    JobStatus = "Closed"
)

// AllUserRoles lists every role the identity service recognises.
var AllUserRoles = []UserRole{UserRoleCustomer, UserRoleProfessional, UserRoleAdmin}

var AllProfessionalTypes = []ProfessionalType{
	ProfessionalTypeAdvocate,
	ProfessionalTypeBroker,
	ProfessionalTypeConveyancer,
	ProfessionalTypeBuildAndPest,
}

// AllStates is the closed set of Australian states and territories.
var AllStates = []AUState{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT"}

// ParseUserRole matches a role name case-insensitively.
func ParseUserRole(s string) (UserRole, bool) {
	for _, r := range AllUserRoles {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return "", false
}

func (r UserRole) IsValid() bool {
	_, ok := ParseUserRole(string(r))
	return ok
}

func ParseProfessionalType(s string) (ProfessionalType, bool) {
	for _, t := range AllProfessionalTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

func (t ProfessionalType) IsValid() bool {
	_, ok := ParseProfessionalType(string(t))
	return ok
}

func ParseAUState(s string) (AUState, bool) {
	for _, st := range AllStates {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether an admin decision has already been recorded.
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationStatusVerified || s == VerificationStatusRejected
}

func (t JobType) IsValid() bool {
	return t == JobTypeBuy || t == JobTypeSell
}

var jobStatusRank = map[JobStatus]int{
	JobStatusOpen:      0,
	JobStatusMatched:   1,
	JobStatusFinalised: 2,
	JobStatusClosed:    3,
}

func (s JobStatus) IsValid() bool {
	_, ok := jobStatusRank[s]
	return ok
}

// CanTransitionTo allows forward moves only. Steps may be skipped
// (Open -> Finalised) but a status never moves back or stays put.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	from, ok := jobStatusRank[s]
	if !ok {
		return false
	}
	to, ok := jobStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// IsEditable reports whether the owner may still change or delete the job.
func (s JobStatus) IsEditable() bool {
	return s == JobStatusOpen || s == JobStatusMatched
}
