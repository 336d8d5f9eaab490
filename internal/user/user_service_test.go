package user_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-salescrm/internal/user"
	usererrors "go-salescrm/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users      map[uuid.UUID]*user.User
	assignable []user.User

	assignableCalls int
	created         []*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) WithTx(*sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.created = append(f.created, u)
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindAll(context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByUsername(context.Context, string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAssignable(context.Context) ([]user.User, error) {
	f.assignableCalls++
	return f.assignable, nil
}

func (f *fakeUserRepo) FindByIDs(context.Context, []uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByNameIn(context.Context, []string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindIDsByDepartment(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindIDsBySupervisorIn(context.Context, []uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type userDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *fakeUserRepo
	redisMock redismock.ClientMock
	service   user.Service
}

func setupUserTest(t *testing.T) *userDeps {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	repo := newFakeUserRepo()
	rdb, redisMock := redismock.NewClientMock()

	return &userDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		redisMock: redisMock,
		service:   user.NewService(db, repo, rdb, zap.NewNop()),
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and uses phone as login", func(t *testing.T) {
		deps := setupUserTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(user.AssignableOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Rizky",
			Phone:    "0812000999",
			Password: "rahasia123",
			Role:     user.RoleEmployee,
		})

		require.NoError(t, err)
		assert.Equal(t, "0812000999", resp.Username)
		assert.Equal(t, user.StatusProbation, resp.Status)

		require.Len(t, deps.repo.created, 1)
		stored := deps.repo.created[0]
		assert.NotEqual(t, "rahasia123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rahasia123")))
	})

	t.Run("malformed supervisor id", func(t *testing.T) {
		deps := setupUserTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:         "Rizky",
			Phone:        "0812000999",
			Role:         user.RoleEmployee,
			SupervisorID: "not-a-uuid",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidSupervisor)
	})
}

func TestUserService_GetAssignableOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupUserTest(t)
		defer deps.db.Close()

		cached := []user.UserOption{{ID: uuid.NewString(), Name: "Ana", Role: user.RoleEmployee}}
		payload, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(user.AssignableOptionsKey).SetVal(string(payload))

		options, err := deps.service.GetAssignableOptions(ctx)

		assert.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, "Ana", options[0].Name)
		assert.Zero(t, deps.repo.assignableCalls)
	})

	t.Run("cache miss rebuilds and stores", func(t *testing.T) {
		deps := setupUserTest(t)
		defer deps.db.Close()

		deps.repo.assignable = []user.User{
			{ID: uuid.New(), Name: "Budi", Role: user.RoleSupervisor},
		}
		deps.redisMock.ExpectGet(user.AssignableOptionsKey).RedisNil()
		deps.redisMock.ExpectSet(user.AssignableOptionsKey, gomock.Any(), 10*time.Minute).SetVal("OK")

		options, err := deps.service.GetAssignableOptions(ctx)

		assert.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, "Budi", options[0].Name)
		assert.Equal(t, 1, deps.repo.assignableCalls)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the user and drops the cache", func(t *testing.T) {
		deps := setupUserTest(t)
		defer deps.db.Close()

		u := &user.User{ID: uuid.New(), Name: "Citra"}
		deps.repo.users[u.ID] = u

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(user.AssignableOptionsKey).SetVal(1)

		err := deps.service.Delete(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.NotContains(t, deps.repo.users, u.ID)
	})

	t.Run("malformed id maps to not found", func(t *testing.T) {
		deps := setupUserTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, "abc")
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
