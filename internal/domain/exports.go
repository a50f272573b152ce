package domain

import (
	interfaces "ptjobs/internal/domain/interfaces"
	types "ptjobs/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ID                = types.ID
	Role              = types.Role
	LoadingState      = types.LoadingState
	Profile           = types.Profile
	Session           = types.Session
	Credentials       = types.Credentials
	Registration      = types.Registration
	PasswordGrant     = types.PasswordGrant
	TokenResponse     = types.TokenResponse
	RegisterResponse  = types.RegisterResponse
	Amount            = types.Amount
	JobCategory       = types.JobCategory
	WorkTime          = types.WorkTime
	JobPost           = types.JobPost
	Company           = types.Company
	Candidate         = types.Candidate
	ApplicationStatus = types.ApplicationStatus
	Application       = types.Application
	Review            = types.Review
	Follow            = types.Follow
	Resume            = types.Resume
	CompanyImage      = types.CompanyImage
	Notification      = types.Notification
	ListQuery         = types.ListQuery
	Destination       = types.Destination
	Params            = types.Params
	Node              = types.Node
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore     = interfaces.KeyValueStore
	AuthClient        = interfaces.AuthClient
	MarketplaceClient = interfaces.MarketplaceClient
	SessionService    = interfaces.SessionService
	Navigator         = interfaces.Navigator
)

// Re-exported constants.
const (
	RoleNone      = types.RoleNone
	RoleCandidate = types.RoleCandidate
	RoleCompany   = types.RoleCompany

	LoadingRestoring = types.LoadingRestoring
	LoadingReady     = types.LoadingReady

	StatusReviewing  = types.StatusReviewing
	StatusEmployed   = types.StatusEmployed
	StatusRejected   = types.StatusRejected
	StatusTerminated = types.StatusTerminated

	GrantTypePassword = types.GrantTypePassword
)

// Re-exported helpers.
var (
	ParseRole = types.ParseRole
	ParseID   = types.ParseID
)
