package account

import (
	"context"
	"testing"
	"time"

	"github.com/Pjt727/roster/data/db"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[string]db.User
	logins map[string][]db.LoginHistory
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]db.User{}, logins: map[string][]db.LoginHistory{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, arg db.CreateUserParams) error {
	if _, ok := f.users[arg.UserName]; ok {
		return &db.StoreError{Op: "create user", Err: db.ErrAlreadyExists}
	}
	f.users[arg.UserName] = db.User{UserName: arg.UserName, EncryptedPassword: arg.EncryptedPassword, Email: arg.Email}
	return nil
}

func (f *fakeUserStore) GetUser(ctx context.Context, userName string) (db.User, error) {
	user, ok := f.users[userName]
	if !ok {
		return db.User{}, &db.StoreError{Op: "get user", Err: db.ErrNotFound}
	}
	return user, nil
}

func (f *fakeUserStore) AddLogin(ctx context.Context, arg db.AddLoginParams) error {
	f.logins[arg.UserName] = append(f.logins[arg.UserName], db.LoginHistory{
		DateTime:  pgtype.Timestamptz{Time: arg.DateTime, Valid: true},
		UserAgent: arg.UserAgent,
	})
	return nil
}

func (f *fakeUserStore) GetLoginHistory(ctx context.Context, userName string) ([]db.LoginHistory, error) {
	return f.logins[userName], nil
}

func testUsers(store UserStore) *Users {
	u := NewUsers(store)
	u.cost = bcrypt.MinCost
	u.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return u
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	users := testUsers(store)

	err := users.RegisterUser(ctx, Registration{UserName: "ada", Password: "pw", Password2: "pw", Email: "ada@example.com"})
	require.NoError(t, err)
	stored := store.users["ada"]
	assert.NotEqual(t, "pw", stored.EncryptedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.EncryptedPassword), []byte("pw")))
	assert.Equal(t, "ada@example.com", stored.Email.String)

	err = users.RegisterUser(ctx, Registration{UserName: "ada", Password: "pw", Password2: "pw"})
	assert.ErrorIs(t, err, ErrUserNameTaken)
}

func TestRegisterUserValidation(t *testing.T) {
	ctx := context.Background()
	users := testUsers(newFakeUserStore())

	err := users.RegisterUser(ctx, Registration{UserName: "ada", Password: "pw", Password2: "other"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = users.RegisterUser(ctx, Registration{UserName: " ", Password: "pw", Password2: "pw"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	err = users.RegisterUser(ctx, Registration{UserName: "ada"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestCheckUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	users := testUsers(store)
	require.NoError(t, users.RegisterUser(ctx, Registration{UserName: "ada", Password: "pw", Password2: "pw", Email: "ada@example.com"}))

	_, err := users.CheckUser(ctx, Credentials{UserName: "bob", Password: "pw"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = users.CheckUser(ctx, Credentials{UserName: "ada", Password: "nope"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	assert.Empty(t, store.logins["ada"], "failed attempts are not logins")

	user, err := users.CheckUser(ctx, Credentials{UserName: "ada", Password: "pw", UserAgent: "curl/8.0"})
	require.NoError(t, err)
	assert.Equal(t, "ada", user.UserName)
	assert.Equal(t, "ada@example.com", user.Email)
	require.Len(t, user.LoginHistory, 1)
	assert.Equal(t, "curl/8.0", user.LoginHistory[0].UserAgent)
	assert.Equal(t, users.now(), user.LoginHistory[0].DateTime)

	user, err = users.CheckUser(ctx, Credentials{UserName: "ada", Password: "pw"})
	require.NoError(t, err)
	assert.Len(t, user.LoginHistory, 2)
}
