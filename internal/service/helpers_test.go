package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/alexanderramin/parish/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

// seededDirectory returns a directory service over a database holding s.
func seededDirectory(t *testing.T, s entity.Store, observers ...UseCaseObserver) (DirectoryService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	require.NoError(t, repository.NewSQLiteEntityRepo(database).SaveSnapshot(context.Background(), s))
	return NewDirectoryService(testutil.NewTestUoW(database), repository.NewSQLiteRepos, observers...), database
}

func ids(nodes []domain.EntityNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}
