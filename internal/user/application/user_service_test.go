package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/user/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/tests/mocks"
)

func newService() (*UserService, *mocks.InMemoryUserRepo) {
	repo := mocks.NewInMemoryUserRepo()
	return NewUserService(repo, &mocks.DummyCache{}, domain.ListConfig(), zap.NewNop()), repo
}

func TestCreateUser_Success(t *testing.T) {
	service, repo := newService()

	u, err := service.CreateUser(context.Background(), "Ana", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	require.Len(t, repo.Outbox, 1)
	assert.Equal(t, domain.UserCreated, repo.Outbox[0].EventType)
	assert.Equal(t, sharedEvents.UserCreated{ID: 1, Name: "Ana", Email: "ana@example.com"}, repo.Outbox[0].Payload)
}

func TestCreateUser_Duplicate(t *testing.T) {
	service, _ := newService()
	_, err := service.CreateUser(context.Background(), "Ana", "ana@example.com")
	require.NoError(t, err)

	_, err = service.CreateUser(context.Background(), "Ana", "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestListUsers_CursorWalk(t *testing.T) {
	service, _ := newService()
	for i := 1; i <= 5; i++ {
		_, err := service.CreateUser(context.Background(), fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@example.com", i))
		require.NoError(t, err)
	}

	q := query.ListQuery{SortField: "id", SortDirection: "asc", PageSize: 2, Mode: query.ModeCursor}
	var ids []int64
	for {
		res, err := service.ListUsers(context.Background(), q)
		require.NoError(t, err)
		assert.Nil(t, res.Total)
		for _, u := range res.Rows {
			ids = append(ids, u.ID)
		}
		if !res.HasMore {
			break
		}
		q.Cursor = res.NextCursor
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
}

func TestCountUsers(t *testing.T) {
	service, _ := newService()
	_, _ = service.CreateUser(context.Background(), "Ana", "ana@example.com")

	n, err := service.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// MockCache con testify/mock para comprobar el cache-aside
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	if args.Bool(0) {
		*dest.(*domain.User) = domain.User{ID: 7, Name: "Cached"}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	return m.Called(ctx, key, val, ttlSecs).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestGetUser_CacheHit(t *testing.T) {
	c := new(MockCache)
	c.On("Get", mock.Anything, "user:7", mock.Anything).Return(true, nil)

	service := NewUserService(mocks.NewInMemoryUserRepo(), c, domain.ListConfig(), zap.NewNop())
	u, err := service.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Cached", u.Name)
	c.AssertExpectations(t)
}

func TestGetUser_NotFoundIsNotRetried(t *testing.T) {
	service, _ := newService()

	_, err := service.GetUser(context.Background(), 42)
	assert.True(t, errors.Is(err, sharedDomain.ErrNotFound))
}
