package application

import (
	"time"

	"github.com/wyfcoding/investplatform/internal/request/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// SubmitRequestCommand 提交资金请求命令
type SubmitRequestCommand struct {
	SubmitterID    string `json:"submitter_id"`
	SubmitterEmail string `json:"submitter_email"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
}

// RequestDTO 资金请求视图
type RequestDTO struct {
	RequestID      string    `json:"request_id"`
	SubmitterID    string    `json:"submitter_id"`
	SubmitterEmail string    `json:"submitter_email"`
	Kind           string    `json:"kind"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	AdminNote      string    `json:"admin_note,omitempty"`
	FolderID       string    `json:"folder_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TransitionDTO 迁移结果视图，Notified/NotifyError 表达通知软失败
type TransitionDTO struct {
	RequestID   string `json:"request_id"`
	Status      string `json:"status"`
	AuditID     string `json:"audit_id"`
	Notified    bool   `json:"notified"`
	NotifyError string `json:"notify_error,omitempty"`
}

// RequestListDTO 分页列表视图
type RequestListDTO struct {
	Items      []*RequestDTO     `json:"items"`
	Pagination *utils.Pagination `json:"pagination"`
}

func toRequestDTO(r *domain.Request) *RequestDTO {
	dto := &RequestDTO{
		RequestID:      r.RequestID,
		SubmitterID:    r.SubmitterID,
		SubmitterEmail: r.SubmitterEmail,
		Kind:           string(r.Kind),
		Amount:         r.Amount.String(),
		Currency:       r.Currency,
		Status:         string(r.Status),
		AdminNote:      r.AdminNote,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.FolderID != nil {
		dto.FolderID = *r.FolderID
	}
	return dto
}
