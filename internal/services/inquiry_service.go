package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"artshop/internal/models"
	"artshop/internal/notify"
	"artshop/internal/repositories"
)

// InquiryService handles contact, print and commission requests.
type InquiryService struct {
	inquiries repositories.InquiryRepository
	notifier  notify.OwnerNotifier
	policy    *bluemonday.Policy
}

// NewInquiryService creates a new InquiryService. notifier may be nil.
func NewInquiryService(inquiries repositories.InquiryRepository, notifier notify.OwnerNotifier) *InquiryService {
	return &InquiryService{
		inquiries: inquiries,
		notifier:  notifier,
		policy:    bluemonday.StrictPolicy(),
	}
}

// SubmitInquiryInput is a public form submission.
type SubmitInquiryInput struct {
	Type      models.InquiryType
	Name      string
	Email     string
	Phone     string
	Message   string
	ArtworkID *uint
}

// Submit stores the inquiry and alerts the owner. Markup in the message is
// stripped before it is stored.
func (s *InquiryService) Submit(ctx context.Context, in SubmitInquiryInput) (*models.Inquiry, error) {
	message := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in.Message)))

	verr := &ValidationError{}
	if !in.Type.Valid() {
		verr.add("type", "Type must be contact, print or commission")
	}
	if strings.TrimSpace(in.Name) == "" {
		verr.add("name", "Name is required")
	}
	if !validEmail(in.Email) {
		verr.add("email", "Valid email is required")
	}
	if message == "" {
		verr.add("message", "Message is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{
		Type:      in.Type,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     optional(in.Phone),
		Message:   message,
		ArtworkID: in.ArtworkID,
		Status:    models.InquiryStatusNew,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to save inquiry: %w", err)
	}

	if s.notifier != nil {
		delivered, err := s.notifier.NotifyOwner(ctx, notify.Notification{
			Title:   fmt.Sprintf("New %s inquiry", inquiry.Type),
			Content: fmt.Sprintf("From: %s (%s)\nMessage: %s", inquiry.Name, inquiry.Email, inquiry.Message),
		})
		if err != nil {
			log.Printf("[Inquiries] Owner notification failed: %v", err)
		} else if !delivered {
			log.Printf("[Inquiries] Owner notification not delivered for inquiry %d", inquiry.ID)
		}
	}
	return inquiry, nil
}

// GetAll returns inquiries oldest first, or an empty list if the datastore
// cannot be read.
func (s *InquiryService) GetAll(ctx context.Context) []models.Inquiry {
	inquiries, err := s.inquiries.GetAll(ctx)
	if err != nil {
		log.Printf("[Inquiries] Failed to list inquiries: %v", err)
		return []models.Inquiry{}
	}
	return inquiries
}

func (s *InquiryService) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) error {
	if !status.Valid() {
		return &ValidationError{Fields: map[string]string{"status": "Unknown inquiry status"}}
	}
	if err := s.inquiries.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("inquiry %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return nil
}
