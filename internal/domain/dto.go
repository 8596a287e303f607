package domain

import (
	"time"

	"github.com/google/uuid"
)

// --- Requests ---

// LoginRequest carries sign-in credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateUserRequest creates a dashboard account
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"max=200"`
	Role     string `json:"role" validate:"required,oneof=superadmin admin member viewer"`
}

// UpdateUserRequest updates a dashboard account. Nil fields are untouched.
type UpdateUserRequest struct {
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=200"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=superadmin admin member viewer"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateClientRequest creates a client or prospect
type CreateClientRequest struct {
	Name            string     `json:"name" validate:"required,min=2,max=200"`
	Type            string     `json:"type" validate:"required,oneof=residential commercial industrial"`
	ContactPerson   string     `json:"contactPerson" validate:"max=200"`
	Email           string     `json:"email" validate:"omitempty,email"`
	Phone           string     `json:"phone" validate:"max=50"`
	Address         string     `json:"address" validate:"max=500"`
	Notes           string     `json:"notes"`
	IsProspect      bool       `json:"isProspect"`
	LastContactDate *time.Time `json:"lastContactDate,omitempty"`
	NextFollowUp    *time.Time `json:"nextFollowUp,omitempty"`
}

// UpdateClientRequest updates a client. Nil fields are untouched.
type UpdateClientRequest struct {
	Name            *string    `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Type            *string    `json:"type,omitempty" validate:"omitempty,oneof=residential commercial industrial"`
	ContactPerson   *string    `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address         *string    `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes           *string    `json:"notes,omitempty"`
	IsProspect      *bool      `json:"isProspect,omitempty"`
	LastContactDate *time.Time `json:"lastContactDate,omitempty"`
	NextFollowUp    *time.Time `json:"nextFollowUp,omitempty"`
}

// CreateProjectRequest creates a project in the pipeline
type CreateProjectRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"required,min=5"`
	ClientID    uuid.UUID  `json:"clientId" validate:"required"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=normal high urgent"`
	Address     string     `json:"address" validate:"max=500"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Value       float64    `json:"value" validate:"gte=0"`
}

// UpdateProjectRequest updates project fields. Status changes go through
// UpdateProjectStatusRequest instead.
type UpdateProjectRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=5"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=normal high urgent"`
	Address     *string    `json:"address,omitempty" validate:"omitempty,max=500"`
	VisitDate   *time.Time `json:"visitDate,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Value       *float64   `json:"value,omitempty" validate:"omitempty,gte=0"`
}

// UpdateProjectStatusRequest moves a project to another pipeline stage
type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateQuoteRequest creates a quote. The total is always computed
// server-side from the cost fields; a submitted total is ignored.
type CreateQuoteRequest struct {
	ProjectID       uuid.UUID  `json:"projectId" validate:"required"`
	MaterialsCost   float64    `json:"materialsCost" validate:"gte=0"`
	LaborCost       float64    `json:"laborCost" validate:"gte=0"`
	AdditionalCosts float64    `json:"additionalCosts" validate:"gte=0"`
	Margin          float64    `json:"margin" validate:"gte=0"`
	Notes           string     `json:"notes"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
}

// CreateServiceOrderRequest creates a work order for a project
type CreateServiceOrderRequest struct {
	ProjectID    uuid.UUID `json:"projectId" validate:"required"`
	Description  string    `json:"description" validate:"required,min=5"`
	Instructions string    `json:"instructions"`
}

// UpdateServiceOrderRequest updates an order that has not started
type UpdateServiceOrderRequest struct {
	Description  *string `json:"description,omitempty" validate:"omitempty,min=5"`
	Instructions *string `json:"instructions,omitempty"`
}

// SignoffRequest carries the optional signature captured on site
type SignoffRequest struct {
	Signature string `json:"signature"`
}

// CreatePersonnelRequest adds a person to the roster
type CreatePersonnelRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=200"`
	Type       string  `json:"type" validate:"required,oneof=employee subcontractor"`
	Position   string  `json:"position" validate:"max=100"`
	HourlyRate float64 `json:"hourlyRate" validate:"gte=0"`
	Phone      string  `json:"phone" validate:"max=50"`
	Email      string  `json:"email" validate:"omitempty,email"`
}

// UpdatePersonnelRequest updates roster details. Nil fields are untouched.
type UpdatePersonnelRequest struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Type       *string  `json:"type,omitempty" validate:"omitempty,oneof=employee subcontractor"`
	Position   *string  `json:"position,omitempty" validate:"omitempty,max=100"`
	HourlyRate *float64 `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	Phone      *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email      *string  `json:"email,omitempty" validate:"omitempty,email"`
	IsActive   *bool    `json:"isActive,omitempty"`
}

// CreateAssignmentRequest assigns personnel to a project. Omitting endDate
// creates an open-ended assignment, marking the person as occupied.
type CreateAssignmentRequest struct {
	ProjectID   uuid.UUID  `json:"projectId" validate:"required"`
	PersonnelID uuid.UUID  `json:"personnelId" validate:"required"`
	Role        string     `json:"role" validate:"max=100"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// UpdateAssignmentRequest closes or reschedules an assignment
type UpdateAssignmentRequest struct {
	Role      *string    `json:"role,omitempty" validate:"omitempty,max=100"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// --- DTOs ---

// UserDTO is the API shape of a user; the password hash never leaves the
// service layer
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName,omitempty"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse carries the session token and the signed-in user
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserDTO   `json:"user"`
}

// ClientDTO is the API shape of a client
type ClientDTO struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Type            ClientType   `json:"type"`
	ContactPerson   string       `json:"contactPerson,omitempty"`
	Email           string       `json:"email,omitempty"`
	Phone           string       `json:"phone,omitempty"`
	Address         string       `json:"address,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	IsProspect      bool         `json:"isProspect"`
	LastContactDate *time.Time   `json:"lastContactDate,omitempty"`
	NextFollowUp    *time.Time   `json:"nextFollowUp,omitempty"`
	CreatedBy       uuid.UUID    `json:"createdBy"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	Projects        []ProjectDTO `json:"projects,omitempty"`
}

// ProjectDTO is the API shape of a project
type ProjectDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ClientID    uuid.UUID       `json:"clientId"`
	ClientName  string          `json:"clientName,omitempty"`
	Status      ProjectStatus   `json:"status"`
	Priority    ProjectPriority `json:"priority"`
	Address     string          `json:"address,omitempty"`
	VisitDate   *time.Time      `json:"visitDate,omitempty"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	Value       float64         `json:"value"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// QuoteDTO is the API shape of a quote
type QuoteDTO struct {
	ID              uuid.UUID  `json:"id"`
	ProjectID       uuid.UUID  `json:"projectId"`
	ProjectTitle    string     `json:"projectTitle,omitempty"`
	QuoteNumber     string     `json:"quoteNumber"`
	MaterialsCost   float64    `json:"materialsCost"`
	LaborCost       float64    `json:"laborCost"`
	AdditionalCosts float64    `json:"additionalCosts"`
	Margin          float64    `json:"margin"`
	TotalAmount     float64    `json:"totalAmount"`
	Notes           string     `json:"notes,omitempty"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
	IsApproved      bool       `json:"isApproved"`
	ApprovalDate    *time.Time `json:"approvalDate,omitempty"`
	CreatedBy       uuid.UUID  `json:"createdBy"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ServiceOrderDTO is the API shape of a work order
type ServiceOrderDTO struct {
	ID           uuid.UUID          `json:"id"`
	ProjectID    uuid.UUID          `json:"projectId"`
	ProjectTitle string             `json:"projectTitle,omitempty"`
	OrderNumber  string             `json:"orderNumber"`
	Description  string             `json:"description"`
	Instructions string             `json:"instructions,omitempty"`
	Status       ServiceOrderStatus `json:"status"`
	StartedAt    *time.Time         `json:"startedAt,omitempty"`
	CompletedAt  *time.Time         `json:"completedAt,omitempty"`
	HasStartSig  bool               `json:"hasStartSignature"`
	HasEndSig    bool               `json:"hasEndSignature"`
	CreatedBy    uuid.UUID          `json:"createdBy"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// PersonnelDTO is the API shape of a roster entry
type PersonnelDTO struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Type       PersonnelType `json:"type"`
	Position   string        `json:"position,omitempty"`
	HourlyRate float64       `json:"hourlyRate"`
	Phone      string        `json:"phone,omitempty"`
	Email      string        `json:"email,omitempty"`
	IsActive   bool          `json:"isActive"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// AssignmentDTO is the API shape of a project assignment
type AssignmentDTO struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"projectId"`
	PersonnelID   uuid.UUID  `json:"personnelId"`
	PersonnelName string     `json:"personnelName,omitempty"`
	Role          string     `json:"role,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ProjectImageDTO is the API shape of an uploaded image
type ProjectImageDTO struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size"`
	Caption     string    `json:"caption,omitempty"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ActivityDTO is the API shape of an audit record
type ActivityDTO struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        ActivityType `json:"type"`
	RelatedID   *uuid.UUID   `json:"relatedId,omitempty"`
	RelatedType string       `json:"relatedType,omitempty"`
	CreatedBy   uuid.UUID    `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// RevenueBreakdown is the fixed-percentage display split of total revenue.
// The percentages are presentation constants, not an aggregation of quote
// line items.
type RevenueBreakdown struct {
	Materials float64 `json:"materials"`
	Labor     float64 `json:"labor"`
	Net       float64 `json:"net"`
}

// DashboardStats is the aggregate view recomputed on every request
type DashboardStats struct {
	MonthlyProfit        float64          `json:"monthlyProfit"`
	ProfitChangePercent  float64          `json:"profitChangePercent"`
	ActiveProjects       int64            `json:"activeProjects"`
	UrgentProjects       int64            `json:"urgentProjects"`
	PendingQuotes        int64            `json:"pendingQuotes"`
	PendingQuotesValue   float64          `json:"pendingQuotesValue"`
	TotalPersonnel       int64            `json:"totalPersonnel"`
	AvailablePersonnel   int64            `json:"availablePersonnel"`
	Revenue              RevenueBreakdown `json:"revenue"`
	RecentActivities     []ActivityDTO    `json:"recentActivities"`
	ClientsNeedFollowUp  []ClientDTO      `json:"clientsNeedingFollowUp"`
}
