package models

// UserRole identifies which side of the marketplace a user is on.
type UserRole string

const (
	UserRoleCustomer  UserRole = "customer"
	UserRolePerformer UserRole = "performer"
	UserRoleAdmin     UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// ModerationStatus is the lifecycle of performer content awaiting admin review.
type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PartnerStatus string

const (
	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusApproved PartnerStatus = "approved"
	PartnerStatusRejected PartnerStatus = "rejected"
)

// ListingCategory enumerates the performer service kinds.
type ListingCategory string

const (
	ListingCategoryPhotographer ListingCategory = "photographer"
	ListingCategoryDJ           ListingCategory = "dj"
	ListingCategoryHost         ListingCategory = "host"
	ListingCategoryCaterer      ListingCategory = "caterer"
	ListingCategoryMusician     ListingCategory = "musician"
	ListingCategoryDecorator    ListingCategory = "decorator"
)
