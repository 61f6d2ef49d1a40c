package provider

import (
	"context"
	"fmt"
	"strings"

	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newID() string { return uuid.NewString() }

// RegisterProvider creates an empty profile and issues the bearer token for it.
func (s *DefaultProviderService) RegisterProvider(ctx context.Context, req models.ProviderRegistrationRequest) (*models.ProviderAuthResponse, error) {
	p := &models.Provider{
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		WeeklyAvailability: []models.WeeklyAvailabilityEntry{},
		BlockedRanges:      []models.BlockedRange{},
		Offerings:          []models.Offering{},
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(p.ID.String(), p.Email, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	utils.GetLogger().Info("Provider registered", zap.String("providerID", p.ID.String()))
	return &models.ProviderAuthResponse{Provider: *p, Token: token}, nil
}

func (s *DefaultProviderService) GetProvider(ctx context.Context, id models.ProviderID) (*models.Provider, error) {
	return s.Repo.GetByID(ctx, id)
}
