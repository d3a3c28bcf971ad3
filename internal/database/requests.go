package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.Request) error {
	query := `INSERT INTO requests (description, requester_id, creation_date) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query, request.Description, request.RequesterID, request.CreationDate)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create request: last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	var r models.Request
	query := `SELECT id, description, requester_id, creation_date FROM requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Description, &r.RequesterID, &r.CreationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("request with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &r, nil
}

func (db *DB) GetUserRequests(ctx context.Context, requesterID int64) ([]*models.Request, error) {
	query := `SELECT id, description, requester_id, creation_date FROM requests
              WHERE requester_id = ? ORDER BY creation_date DESC`
	return db.queryRequests(ctx, query, requesterID)
}

func (db *DB) GetAllRequests(ctx context.Context) ([]*models.Request, error) {
	query := `SELECT id, description, requester_id, creation_date FROM requests ORDER BY creation_date DESC`
	return db.queryRequests(ctx, query)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.Request
	for rows.Next() {
		var r models.Request
		if err := rows.Scan(&r.ID, &r.Description, &r.RequesterID, &r.CreationDate); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, &r)
	}
	return requests, rows.Err()
}
