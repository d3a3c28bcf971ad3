package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/models"
)

type ItemService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewItemService(store domain.Store, logger *zerolog.Logger) *ItemService {
	return &ItemService{store: store, logger: logger}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req *models.CreateItemRequest) (*models.ItemResponse, error) {
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.Validation("item name must not be empty")
	}
	if req.RequestID != nil {
		if _, err := s.store.GetRequest(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return models.ItemToResponse(item), nil
}

// UpdateItem applies a partial update. Only the item's owner may change it.
// The actor is resolved first, so an unknown user reads as not-found rather
// than as a failed ownership check.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID int64, req *models.UpdateItemRequest) (*models.ItemResponse, error) {
	if _, err := s.store.GetUser(ctx, actorID); err != nil {
		return nil, err
	}
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, domain.Authorization("user %d does not own item %d", actorID, itemID)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domain.Validation("item name must not be empty")
		}
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", itemID).Msg("item updated")
	return models.ItemToResponse(item), nil
}

// GetItem returns the item with its comments attached.
func (s *ItemService) GetItem(ctx context.Context, itemID int64) (*models.ItemWithCommentsResponse, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.store.GetItemComments(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := &models.ItemWithCommentsResponse{
		ItemResponse: *models.ItemToResponse(item),
		Comments:     commentsToResponses(comments),
	}
	return resp, nil
}

// GetOwnerItems builds the owner's dashboard: each item with the start of
// its closest past and upcoming bookings, any status, and its comments.
// Now is captured once so every row agrees on the boundary.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemBoardResponse, error) {
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.store.GetOwnerItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bookings, err := s.store.ListByOwner(ctx, ownerID, models.StateAll, now)
	if err != nil {
		return nil, err
	}

	comments, err := s.store.GetOwnerComments(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	lastByItem := make(map[int64]time.Time)
	nextByItem := make(map[int64]time.Time)
	for _, b := range bookings {
		if !b.StartDate.After(now) {
			if cur, ok := lastByItem[b.ItemID]; !ok || b.StartDate.After(cur) {
				lastByItem[b.ItemID] = b.StartDate
			}
		} else {
			if cur, ok := nextByItem[b.ItemID]; !ok || b.StartDate.Before(cur) {
				nextByItem[b.ItemID] = b.StartDate
			}
		}
	}

	commentsByItem := make(map[int64][]models.CommentResponse)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], models.CommentToResponse(c))
	}

	board := make([]*models.ItemBoardResponse, 0, len(items))
	for _, item := range items {
		row := &models.ItemBoardResponse{
			ItemResponse: *models.ItemToResponse(item),
			Comments:     commentsByItem[item.ID],
		}
		if row.Comments == nil {
			row.Comments = []models.CommentResponse{}
		}
		if t, ok := lastByItem[item.ID]; ok {
			last := t
			row.LastBooking = &last
		}
		if t, ok := nextByItem[item.ID]; ok {
			next := t
			row.NextBooking = &next
		}
		board = append(board, row)
	}

	sort.Slice(board, func(i, j int) bool { return board[i].ID < board[j].ID })
	return board, nil
}

// SearchItems returns available items matching the text. Blank text means
// an empty result, not an error.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]*models.ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.ItemResponse{}, nil
	}

	items, err := s.store.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.ItemToResponse(item))
	}
	return responses, nil
}

// AddComment lets a user comment on an item only after renting it: the
// author needs at least one booking of the item that has already ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req *models.CreateCommentRequest) (*models.CommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.Validation("comment text must not be empty")
	}

	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := s.store.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Validation("user %d has no finished booking of item %d", authorID, itemID)
	}

	comment := &models.Comment{
		ItemID:       itemID,
		AuthorID:     authorID,
		AuthorName:   author.Name,
		Text:         text,
		CreationDate: now,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	resp := models.CommentToResponse(comment)
	return &resp, nil
}

func commentsToResponses(comments []*models.Comment) []models.CommentResponse {
	responses := make([]models.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, models.CommentToResponse(c))
	}
	return responses
}
