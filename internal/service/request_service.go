package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/models"
)

type RequestService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewRequestService(store domain.Store, logger *zerolog.Logger) *RequestService {
	return &RequestService{store: store, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, req *models.CreateRequestRequest) (*models.RequestResponse, error) {
	if _, err := s.store.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.Validation("request description must not be empty")
	}

	request := &models.Request{
		Description:  description,
		RequesterID:  requesterID,
		CreationDate: time.Now().UTC(),
	}
	if err := s.store.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("request created")
	return models.RequestToResponse(request), nil
}

// GetRequest returns the request with the items offered in answer to it.
func (s *RequestService) GetRequest(ctx context.Context, actorID, requestID int64) (*models.RequestWithAnswersResponse, error) {
	if _, err := s.store.GetUser(ctx, actorID); err != nil {
		return nil, err
	}
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	responses, err := s.withAnswers(ctx, []*models.Request{request})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// GetUserRequests lists the actor's own requests, newest first, each with
// its answers.
func (s *RequestService) GetUserRequests(ctx context.Context, requesterID int64) ([]*models.RequestWithAnswersResponse, error) {
	if _, err := s.store.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.store.GetUserRequests(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

// GetAllRequests lists every request, the caller's own included, newest
// first. Answers are not attached here; GetRequest carries them.
func (s *RequestService) GetAllRequests(ctx context.Context) ([]*models.RequestResponse, error) {
	requests, err := s.store.GetAllRequests(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, models.RequestToResponse(r))
	}
	return responses, nil
}

func (s *RequestService) withAnswers(ctx context.Context, requests []*models.Request) ([]*models.RequestWithAnswersResponse, error) {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}

	answers, err := s.store.GetItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	itemsByRequest := make(map[int64][]models.ItemResponse)
	for _, item := range answers {
		if item.RequestID == nil {
			continue
		}
		itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], *models.ItemToResponse(item))
	}

	responses := make([]*models.RequestWithAnswersResponse, 0, len(requests))
	for _, r := range requests {
		resp := &models.RequestWithAnswersResponse{
			RequestResponse: *models.RequestToResponse(r),
			Items:           itemsByRequest[r.ID],
		}
		if resp.Items == nil {
			resp.Items = []models.ItemResponse{}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
