package models

import "time"

// InquiryType is the form an inquiry came through.
type InquiryType string

const (
	InquiryContact    InquiryType = "contact"
	InquiryPrint      InquiryType = "print"
	InquiryCommission InquiryType = "commission"
)

func (t InquiryType) Valid() bool {
	return t == InquiryContact || t == InquiryPrint || t == InquiryCommission
}

// InquiryStatus is the admin triage state of an inquiry.
type InquiryStatus string

const (
	InquiryStatusNew      InquiryStatus = "new"
	InquiryStatusRead     InquiryStatus = "read"
	InquiryStatusReplied  InquiryStatus = "replied"
	InquiryStatusArchived InquiryStatus = "archived"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusRead, InquiryStatusReplied, InquiryStatusArchived:
		return true
	}
	return false
}

// Inquiry is a public contact, print or commission request.
type Inquiry struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Type      InquiryType   `json:"type" gorm:"size:16;not null"`
	Name      string        `json:"name" gorm:"size:255;not null"`
	Email     string        `json:"email" gorm:"size:320;not null"`
	Phone     *string       `json:"phone" gorm:"size:50"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	ArtworkID *uint         `json:"artworkId"`
	Status    InquiryStatus `json:"status" gorm:"size:16;not null;default:new"`
	CreatedAt time.Time     `json:"createdAt"`
}
