package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
)

// Canned answers of the support chat.
const (
	replyFreelancers = "Freelancers on our platform are verified and skilled. You can view their profile and reviews before hiring."
	replyHiring      = `To hire a freelancer, go to their profile and click "Hire Now" or send them a message.`
	replyPayments    = "All payments are processed securely through our platform. You pay only when the work is done."
	replySupport     = "You can reach support by typing your issue here or emailing us at support@example.com."
	replyGreeting    = "Hey there! How can I help you today?"
	replyFallback    = "Hmm... I'm not sure about that. Could you rephrase or ask something else?"
)

type supportService struct {
	validator validators.Validator
}

func NewSupportService(validator validators.Validator) SupportService {
	return &supportService{validator: validator}
}

// Reply picks the first matching rule by case-insensitive substring.
func (s *supportService) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return "", err
	}

	msg := strings.ToLower(req.Message)
	switch {
	case strings.Contains(msg, "freelancer"):
		return replyFreelancers, nil
	case strings.Contains(msg, "how") && strings.Contains(msg, "hire"):
		return replyHiring, nil
	case strings.Contains(msg, "payment"):
		return replyPayments, nil
	case strings.Contains(msg, "contact"), strings.Contains(msg, "support"):
		return replySupport, nil
	case strings.Contains(msg, "hello"), strings.Contains(msg, "hi"):
		return replyGreeting, nil
	default:
		return replyFallback, nil
	}
}
