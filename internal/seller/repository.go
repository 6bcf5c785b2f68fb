package seller

import (
	"context"
	"fmt"
	"sync"

	"github.com/Anhamd/fitbazzar/internal/database"
)

type Repository interface {
	Create(ctx context.Context, app Application) (Application, error)
}

type InMemoryRepository struct {
	mu     sync.Mutex
	apps   []Application
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ctx context.Context, app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app.ID = r.nextID
	r.nextID++
	r.apps = append(r.apps, app)
	return app, nil
}

func (r *InMemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type SQLRepository struct {
	db *database.DB
}

const insertApplicationQuery = `
	INSERT INTO seller_applications (boutique_name, trade_license, description, created_at)
	VALUES (?, ?, ?, ?)
`

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, app Application) (Application, error) {
	id, err := r.db.InsertID(ctx, insertApplicationQuery, app.BoutiqueName, app.TradeLicense, app.Description, app.CreatedAt)
	if err != nil {
		return Application{}, fmt.Errorf("insert seller application: %w", err)
	}
	app.ID = id
	return app, nil
}
