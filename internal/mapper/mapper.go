package mapper

import (
	"github.com/brushworks/fieldops-api/internal/domain"
)

// ToUserDTO converts a user model to its API shape, dropping the password hash
func ToUserDTO(u *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToClientDTO converts a client model to its API shape
func ToClientDTO(c *domain.Client) domain.ClientDTO {
	dto := domain.ClientDTO{
		ID:              c.ID,
		Name:            c.Name,
		Type:            c.Type,
		ContactPerson:   c.ContactPerson,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		Notes:           c.Notes,
		IsProspect:      c.IsProspect,
		LastContactDate: c.LastContactDate,
		NextFollowUp:    c.NextFollowUp,
		CreatedBy:       c.CreatedBy,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if len(c.Projects) > 0 {
		dto.Projects = make([]domain.ProjectDTO, len(c.Projects))
		for i := range c.Projects {
			dto.Projects[i] = ToProjectDTO(&c.Projects[i])
		}
	}
	return dto
}

// ToProjectDTO converts a project model to its API shape
func ToProjectDTO(p *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ClientID:    p.ClientID,
		Status:      p.Status,
		Priority:    p.Priority,
		Address:     p.Address,
		VisitDate:   p.VisitDate,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Value:       p.Value,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Client != nil {
		dto.ClientName = p.Client.Name
	}
	return dto
}

// ToQuoteDTO converts a quote model to its API shape
func ToQuoteDTO(q *domain.Quote) domain.QuoteDTO {
	dto := domain.QuoteDTO{
		ID:              q.ID,
		ProjectID:       q.ProjectID,
		QuoteNumber:     q.QuoteNumber,
		MaterialsCost:   q.MaterialsCost,
		LaborCost:       q.LaborCost,
		AdditionalCosts: q.AdditionalCosts,
		Margin:          q.Margin,
		TotalAmount:     q.TotalAmount,
		Notes:           q.Notes,
		ValidUntil:      q.ValidUntil,
		SentAt:          q.SentAt,
		IsApproved:      q.IsApproved,
		ApprovalDate:    q.ApprovalDate,
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
	if q.Project != nil {
		dto.ProjectTitle = q.Project.Title
	}
	return dto
}

// ToServiceOrderDTO converts a work order to its API shape. Signature blobs
// stay server-side; the DTO only reports their presence.
func ToServiceOrderDTO(o *domain.ServiceOrder) domain.ServiceOrderDTO {
	dto := domain.ServiceOrderDTO{
		ID:           o.ID,
		ProjectID:    o.ProjectID,
		OrderNumber:  o.OrderNumber,
		Description:  o.Description,
		Instructions: o.Instructions,
		Status:       o.Status(),
		StartedAt:    o.StartedAt,
		CompletedAt:  o.CompletedAt,
		HasStartSig:  o.StartSignature != "",
		HasEndSig:    o.EndSignature != "",
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Project != nil {
		dto.ProjectTitle = o.Project.Title
	}
	return dto
}

// ToPersonnelDTO converts a roster entry to its API shape
func ToPersonnelDTO(p *domain.Personnel) domain.PersonnelDTO {
	return domain.PersonnelDTO{
		ID:         p.ID,
		Name:       p.Name,
		Type:       p.Type,
		Position:   p.Position,
		HourlyRate: p.HourlyRate,
		Phone:      p.Phone,
		Email:      p.Email,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToAssignmentDTO converts a project assignment to its API shape
func ToAssignmentDTO(a *domain.ProjectAssignment) domain.AssignmentDTO {
	dto := domain.AssignmentDTO{
		ID:          a.ID,
		ProjectID:   a.ProjectID,
		PersonnelID: a.PersonnelID,
		Role:        a.Role,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		CreatedAt:   a.CreatedAt,
	}
	if a.Personnel != nil {
		dto.PersonnelName = a.Personnel.Name
	}
	return dto
}

// ToProjectImageDTO converts image metadata to its API shape
func ToProjectImageDTO(img *domain.ProjectImage) domain.ProjectImageDTO {
	return domain.ProjectImageDTO{
		ID:          img.ID,
		ProjectID:   img.ProjectID,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		Caption:     img.Caption,
		UploadedBy:  img.UploadedBy,
		CreatedAt:   img.CreatedAt,
	}
}

// ToActivityDTO converts an audit record to its API shape
func ToActivityDTO(a *domain.Activity) domain.ActivityDTO {
	return domain.ActivityDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Type:        a.Type,
		RelatedID:   a.RelatedID,
		RelatedType: a.RelatedType,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
	}
}
