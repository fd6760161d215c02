package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/agrojobs/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, type, created_at
		FROM clients
		ORDER BY created_at ASC, name ASC
	`).Scan(&clients).Error; err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return []model.Client{}, nil
	}

	ids := make([]uuid.UUID, len(clients))
	for i := range clients {
		ids[i] = clients[i].ID
	}
	locations, err := r.listLocations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].Locations = locations[clients[i].ID]
		if clients[i].Locations == nil {
			clients[i].Locations = []model.Location{}
		}
	}
	return clients, nil
}

func (r *ClientRepository) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, type, created_at
		FROM clients
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&client).Error; err != nil {
		return nil, err
	}
	if client.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	locations, err := r.listLocations(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	client.Locations = locations[id]
	if client.Locations == nil {
		client.Locations = []model.Location{}
	}
	return &client, nil
}

func (r *ClientRepository) listLocations(ctx context.Context, clientIDs []uuid.UUID) (map[uuid.UUID][]model.Location, error) {
	var rows []model.Location
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, name, address
		FROM locations
		WHERE client_id IN ?
		ORDER BY position ASC
	`, clientIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]model.Location, len(clientIDs))
	for _, loc := range rows {
		result[loc.ClientID] = append(result[loc.ClientID], loc)
	}
	return result, nil
}

// CreateClient stores the client and its locations in one transaction.
func (r *ClientRepository) CreateClient(ctx context.Context, client model.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO clients (id, name, type)
			VALUES (?, ?, ?)
		`, client.ID, client.Name, string(client.Type)).Error; err != nil {
			return err
		}
		for i, loc := range client.Locations {
			if err := insertLocation(tx, loc, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client model.Client) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE clients
		SET name = ?, type = ?
		WHERE id = ?
	`, client.Name, string(client.Type), client.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteClient removes the client; locations and jobs go with it through
// ON DELETE CASCADE.
func (r *ClientRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM clients WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ClientRepository) AddLocation(ctx context.Context, loc model.Location, position int) error {
	return insertLocation(r.db.WithContext(ctx), loc, position)
}

func (r *ClientRepository) DeleteLocation(ctx context.Context, clientID, locationID uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM locations
		WHERE id = ? AND client_id = ?
	`, locationID, clientID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func insertLocation(tx *gorm.DB, loc model.Location, position int) error {
	return tx.Exec(`
		INSERT INTO locations (id, client_id, name, address, position)
		VALUES (?, ?, ?, ?, ?)
	`, loc.ID, loc.ClientID, loc.Name, loc.Address, position).Error
}
