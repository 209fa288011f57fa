package application

import (
	"time"

	"github.com/wyfcoding/investplatform/internal/companyregistration/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// SubmitRegistrationCommand 提交注册申请命令
type SubmitRegistrationCommand struct {
	SubmitterID    string   `json:"submitter_id"`
	CandidateNames []string `json:"candidate_names"`
	Jurisdiction   string   `json:"jurisdiction"`
	BusinessType   string   `json:"business_type"`
	ContactEmail   string   `json:"contact_email"`
}

// RegistrationDTO 注册申请视图
type RegistrationDTO struct {
	RegistrationID string    `json:"registration_id"`
	SubmitterID    string    `json:"submitter_id"`
	CandidateNames []string  `json:"candidate_names"`
	Jurisdiction   string    `json:"jurisdiction"`
	BusinessType   string    `json:"business_type"`
	ContactEmail   string    `json:"contact_email"`
	Status         string    `json:"status"`
	SelectedName   string    `json:"selected_name,omitempty"`
	AdminNote      string    `json:"admin_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanyDTO 已注册公司视图
type CompanyDTO struct {
	CompanyID          string `json:"company_id"`
	OwnerID            string `json:"owner_id"`
	CompanyName        string `json:"company_name"`
	RegistrationNumber string `json:"registration_number"`
	IncorporationDate  string `json:"incorporation_date"`
	Jurisdiction       string `json:"jurisdiction"`
	Status             string `json:"status"`
	ContactEmail       string `json:"contact_email,omitempty"`
	ContactPhone       string `json:"contact_phone,omitempty"`
}

// TransitionDTO 迁移结果视图
type TransitionDTO struct {
	RegistrationID string `json:"registration_id"`
	Status         string `json:"status"`
	SelectedName   string `json:"selected_name,omitempty"`
	AuditID        string `json:"audit_id"`
	Notified       bool   `json:"notified"`
	NotifyError    string `json:"notify_error,omitempty"`
}

// RegistrationListDTO 分页列表视图
type RegistrationListDTO struct {
	Items      []*RegistrationDTO `json:"items"`
	Pagination *utils.Pagination  `json:"pagination"`
}

func toRegistrationDTO(r *domain.RegistrationRequest) *RegistrationDTO {
	return &RegistrationDTO{
		RegistrationID: r.RegistrationID,
		SubmitterID:    r.SubmitterID,
		CandidateNames: r.CandidateNames,
		Jurisdiction:   r.Jurisdiction,
		BusinessType:   r.BusinessType,
		ContactEmail:   r.ContactEmail,
		Status:         string(r.Status),
		SelectedName:   r.SelectedName,
		AdminNote:      r.AdminNote,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toCompanyDTO(c *domain.RegisteredCompany) *CompanyDTO {
	return &CompanyDTO{
		CompanyID:          c.CompanyID,
		OwnerID:            c.OwnerID,
		CompanyName:        c.CompanyName,
		RegistrationNumber: c.RegistrationNumber,
		IncorporationDate:  c.IncorporationDate.Format(domain.IncorporationDateLayout),
		Jurisdiction:       c.Jurisdiction,
		Status:             string(c.Status),
		ContactEmail:       c.ContactEmail,
		ContactPhone:       c.ContactPhone,
	}
}
