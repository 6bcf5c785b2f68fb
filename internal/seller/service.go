package seller

import (
	"context"
	"strings"
	"time"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Apply stores a seller application. All three fields are required.
func (s *Service) Apply(ctx context.Context, app Application) (Application, error) {
	app.BoutiqueName = strings.TrimSpace(app.BoutiqueName)
	app.TradeLicense = strings.TrimSpace(app.TradeLicense)
	app.Description = strings.TrimSpace(app.Description)
	if app.BoutiqueName == "" || app.TradeLicense == "" || app.Description == "" {
		return Application{}, apperr.Validation("All fields are required")
	}

	app.ID = 0
	app.CreatedAt = s.now().UTC()
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return Application{}, apperr.Storage(err)
	}
	return created, nil
}
