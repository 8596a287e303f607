package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key so the same models work on Postgres
// and on the sqlite databases used in tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserRole represents the access level of a user account
type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleAdmin      UserRole = "admin"
	RoleMember     UserRole = "member"
	RoleViewer     UserRole = "viewer"
)

// IsValid checks if the role is one of the known values
func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// User represents an account that can sign in to the dashboard
type User struct {
	BaseModel
	Username     string   `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string   `gorm:"type:varchar(255);not null;column:password_hash"`
	FullName     string   `gorm:"type:varchar(200);column:full_name"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'member';index"`
	IsActive     bool     `gorm:"not null;default:true;column:is_active"`
}

// ClientType represents the market segment of a client
type ClientType string

const (
	ClientTypeResidential ClientType = "residential"
	ClientTypeCommercial  ClientType = "commercial"
	ClientTypeIndustrial  ClientType = "industrial"
)

// IsValid checks if the client type is one of the known values
func (t ClientType) IsValid() bool {
	switch t {
	case ClientTypeResidential, ClientTypeCommercial, ClientTypeIndustrial:
		return true
	}
	return false
}

// Client represents a customer or prospect of the contracting business
type Client struct {
	BaseModel
	Name            string     `gorm:"type:varchar(200);not null;index"`
	Type            ClientType `gorm:"type:varchar(20);not null;default:'residential';index"`
	ContactPerson   string     `gorm:"type:varchar(200);column:contact_person"`
	Email           string     `gorm:"type:varchar(255)"`
	Phone           string     `gorm:"type:varchar(50)"`
	Address         string     `gorm:"type:varchar(500)"`
	Notes           string     `gorm:"type:text"`
	IsProspect      bool       `gorm:"not null;default:false;column:is_prospect;index"`
	LastContactDate *time.Time `gorm:"column:last_contact_date"`
	NextFollowUp    *time.Time `gorm:"column:next_follow_up;index"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;column:created_by"`
	Projects        []Project  `gorm:"foreignKey:ClientID"`
}

// ProjectStatus represents a stage in the project pipeline.
// The full lifecycle and allowed transitions live in status.go.
type ProjectStatus string

const (
	StatusPendingVisit  ProjectStatus = "pending_visit"
	StatusQuoteSent     ProjectStatus = "quote_sent"
	StatusQuoteApproved ProjectStatus = "quote_approved"
	StatusInPreparation ProjectStatus = "in_preparation"
	StatusInProgress    ProjectStatus = "in_progress"
	StatusFinalReview   ProjectStatus = "final_review"
	StatusCompleted     ProjectStatus = "completed"
	StatusArchived      ProjectStatus = "archived"
)

// ProjectPriority represents the urgency of a project
type ProjectPriority string

const (
	PriorityNormal ProjectPriority = "normal"
	PriorityHigh   ProjectPriority = "high"
	PriorityUrgent ProjectPriority = "urgent"
)

// IsValid checks if the priority is one of the known values
func (p ProjectPriority) IsValid() bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Project represents a painting job moving through the pipeline
type Project struct {
	BaseModel
	Title       string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text;not null"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;column:client_id;index"`
	Client      *Client         `gorm:"foreignKey:ClientID"`
	Status      ProjectStatus   `gorm:"type:varchar(30);not null;default:'pending_visit';index"`
	Priority    ProjectPriority `gorm:"type:varchar(20);not null;default:'normal';index"`
	Address     string          `gorm:"type:varchar(500)"`
	VisitDate   *time.Time      `gorm:"column:visit_date"`
	StartDate   *time.Time      `gorm:"column:start_date"`
	EndDate     *time.Time      `gorm:"column:end_date"`
	Value       float64         `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;column:created_by"`
	Quotes      []Quote         `gorm:"foreignKey:ProjectID"`
	Orders      []ServiceOrder  `gorm:"foreignKey:ProjectID"`
}

// Quote represents a priced offer for a project
type Quote struct {
	BaseModel
	ProjectID       uuid.UUID  `gorm:"type:uuid;not null;column:project_id;index"`
	Project         *Project   `gorm:"foreignKey:ProjectID"`
	QuoteNumber     string     `gorm:"type:varchar(20);not null;uniqueIndex;column:quote_number"`
	MaterialsCost   float64    `gorm:"type:decimal(12,2);not null;default:0;column:materials_cost"`
	LaborCost       float64    `gorm:"type:decimal(12,2);not null;default:0;column:labor_cost"`
	AdditionalCosts float64    `gorm:"type:decimal(12,2);not null;default:0;column:additional_costs"`
	Margin          float64    `gorm:"type:decimal(5,2);not null;default:0"`
	TotalAmount     float64    `gorm:"type:decimal(12,2);not null;default:0;column:total_amount"`
	Notes           string     `gorm:"type:text"`
	ValidUntil      *time.Time `gorm:"column:valid_until"`
	SentAt          *time.Time `gorm:"column:sent_at"`
	IsApproved      bool       `gorm:"not null;default:false;column:is_approved;index"`
	ApprovalDate    *time.Time `gorm:"column:approval_date"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;column:created_by"`
}

// ServiceOrderStatus is derived from the signoff timestamps, never stored
type ServiceOrderStatus string

const (
	OrderStatusPending    ServiceOrderStatus = "pending"
	OrderStatusInProgress ServiceOrderStatus = "in_progress"
	OrderStatusCompleted  ServiceOrderStatus = "completed"
)

// ServiceOrder represents a work order executed on site with signoff
type ServiceOrder struct {
	BaseModel
	ProjectID      uuid.UUID  `gorm:"type:uuid;not null;column:project_id;index"`
	Project        *Project   `gorm:"foreignKey:ProjectID"`
	OrderNumber    string     `gorm:"type:varchar(20);not null;uniqueIndex;column:order_number"`
	Description    string     `gorm:"type:text;not null"`
	Instructions   string     `gorm:"type:text"`
	StartSignature string     `gorm:"type:text;column:start_signature"`
	EndSignature   string     `gorm:"type:text;column:end_signature"`
	StartedAt      *time.Time `gorm:"column:started_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;column:created_by"`
}

// Status derives the lifecycle state from the signoff timestamps
func (o *ServiceOrder) Status() ServiceOrderStatus {
	switch {
	case o.CompletedAt != nil:
		return OrderStatusCompleted
	case o.StartedAt != nil:
		return OrderStatusInProgress
	default:
		return OrderStatusPending
	}
}

// PersonnelType distinguishes employees from subcontractors
type PersonnelType string

const (
	PersonnelTypeEmployee      PersonnelType = "employee"
	PersonnelTypeSubcontractor PersonnelType = "subcontractor"
)

// IsValid checks if the personnel type is one of the known values
func (t PersonnelType) IsValid() bool {
	switch t {
	case PersonnelTypeEmployee, PersonnelTypeSubcontractor:
		return true
	}
	return false
}

// Personnel represents a painter or subcontractor on the roster
type Personnel struct {
	BaseModel
	Name       string        `gorm:"type:varchar(200);not null;index"`
	Type       PersonnelType `gorm:"type:varchar(20);not null;default:'employee'"`
	Position   string        `gorm:"type:varchar(100)"`
	HourlyRate float64       `gorm:"type:decimal(8,2);not null;default:0;column:hourly_rate"`
	Phone      string        `gorm:"type:varchar(50)"`
	Email      string        `gorm:"type:varchar(255)"`
	IsActive   bool          `gorm:"not null;default:true;column:is_active;index"`
}

// ProjectAssignment links personnel to a project for a period.
// A nil EndDate means the assignment is open-ended and the person
// counts as currently occupied.
type ProjectAssignment struct {
	BaseModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;column:project_id;index"`
	Project     *Project   `gorm:"foreignKey:ProjectID"`
	PersonnelID uuid.UUID  `gorm:"type:uuid;not null;column:personnel_id;index"`
	Personnel   *Personnel `gorm:"foreignKey:PersonnelID"`
	Role        string     `gorm:"type:varchar(100)"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
}

// ProjectImage stores metadata for an uploaded site photo.
// The binary lives in the storage backend under StoragePath.
type ProjectImage struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;column:project_id;index"`
	Project     *Project  `gorm:"foreignKey:ProjectID"`
	Filename    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100);column:content_type"`
	StoragePath string    `gorm:"type:varchar(500);not null;column:storage_path"`
	Size        int64     `gorm:"not null;default:0"`
	Caption     string    `gorm:"type:varchar(500)"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;column:uploaded_by"`
}

// ActivityType classifies audit trail entries
type ActivityType string

const (
	ActivityTypeClient       ActivityType = "client"
	ActivityTypeProject      ActivityType = "project"
	ActivityTypeQuote        ActivityType = "quote"
	ActivityTypeServiceOrder ActivityType = "service_order"
	ActivityTypePersonnel    ActivityType = "personnel"
	ActivityTypeUser         ActivityType = "user"
	ActivityTypeFollowUp     ActivityType = "follow_up"
)

// Activity is an append-only audit record. Activities are written in the
// same transaction as the mutation they describe and are never updated
// or deleted.
type Activity struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key"`
	Title       string       `gorm:"type:varchar(200);not null"`
	Description string       `gorm:"type:text"`
	Type        ActivityType `gorm:"type:varchar(30);not null;index"`
	RelatedID   *uuid.UUID   `gorm:"type:uuid;column:related_id;index"`
	RelatedType string       `gorm:"type:varchar(30);column:related_type"`
	CreatedBy   uuid.UUID    `gorm:"type:uuid;column:created_by"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// BeforeCreate assigns the primary key (Activity has no UpdatedAt, so it
// does not embed BaseModel)
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
