package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pjt727/roster/data/db"
	"github.com/Pjt727/roster/server/view"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("user name and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNameTaken      = errors.New("user name already taken")
	ErrUserNotFound       = errors.New("unable to find user")
	ErrIncorrectPassword  = errors.New("incorrect password")
)

// UserStore is the part of the data access layer accounts are kept in
type UserStore interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) error
	GetUser(ctx context.Context, userName string) (db.User, error)
	AddLogin(ctx context.Context, arg db.AddLoginParams) error
	GetLoginHistory(ctx context.Context, userName string) ([]db.LoginHistory, error)
}

type Registration struct {
	UserName  string
	Password  string
	Password2 string
	Email     string
}

type Credentials struct {
	UserName  string
	Password  string
	UserAgent string
}

type Users struct {
	store UserStore
	cost  int
	now   func() time.Time
}

func NewUsers(store UserStore) *Users {
	return &Users{
		store: store,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
}

func (u *Users) RegisterUser(ctx context.Context, reg Registration) error {
	if strings.TrimSpace(reg.UserName) == "" || reg.Password == "" {
		return ErrMissingCredentials
	}
	if reg.Password != reg.Password2 {
		return ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), u.cost)
	if err != nil {
		return fmt.Errorf("could not encrypt password: %w", err)
	}
	err = u.store.CreateUser(ctx, db.CreateUserParams{
		UserName:          reg.UserName,
		EncryptedPassword: string(hash),
		Email:             pgtype.Text{String: reg.Email, Valid: reg.Email != ""},
	})
	if errors.Is(err, db.ErrAlreadyExists) {
		return ErrUserNameTaken
	}
	return err
}

// CheckUser verifies the credentials, records the login and returns the user
// with their full login history
func (u *Users) CheckUser(ctx context.Context, c Credentials) (view.User, error) {
	user, err := u.store.GetUser(ctx, c.UserName)
	if errors.Is(err, db.ErrNotFound) {
		return view.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, c.UserName)
	} else if err != nil {
		return view.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(c.Password)); err != nil {
		return view.User{}, fmt.Errorf("%w for user: %s", ErrIncorrectPassword, c.UserName)
	}

	err = u.store.AddLogin(ctx, db.AddLoginParams{
		UserName:  user.UserName,
		DateTime:  u.now(),
		UserAgent: pgtype.Text{String: c.UserAgent, Valid: c.UserAgent != ""},
	})
	if err != nil {
		return view.User{}, err
	}
	history, err := u.store.GetLoginHistory(ctx, user.UserName)
	if err != nil {
		return view.User{}, err
	}

	sessionUser := view.User{
		UserName:     user.UserName,
		Email:        user.Email.String,
		LoginHistory: make([]view.LoginEntry, len(history)),
	}
	for i, entry := range history {
		sessionUser.LoginHistory[i] = view.LoginEntry{
			DateTime:  entry.DateTime.Time,
			UserAgent: entry.UserAgent.String,
		}
	}
	return sessionUser, nil
}
