// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/validators"
	"github.com/MKhiriev/go-ahorra/models"
	"golang.org/x/crypto/bcrypt"
)

// CurrentUserKey is the value-store key holding the logged-in user's email.
const CurrentUserKey = "currentUserEmail"

// userService is the concrete implementation of UserService.
type userService struct {
	// users persists accounts; values holds the session marker.
	users  store.UserRepository
	values store.ValueStore

	validator  validators.Validator
	bcryptCost int

	changes *notify.Hub[models.Change]
	logger  *logger.Logger
}

// NewUserService constructs a UserService over storage. Passwords are hashed
// with bcrypt at bcryptCost; a cost outside bcrypt's range falls back to
// bcrypt.DefaultCost.
func NewUserService(storage store.Storage, bcryptCost int, log *logger.Logger) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.Nop()
	}
	return &userService{
		users:      storage.Users(),
		values:     storage.Values(),
		validator:  validators.NewEntityValidator(),
		bcryptCost: bcryptCost,
		changes:    notify.NewHub[models.Change](models.TableUsers, log),
		logger:     log,
	}
}

// Changes returns the hub that receives a [models.Change] for the users table
// after every successful write. Logins and logouts are not writes.
func (s *userService) Changes() *notify.Hub[models.Change] {
	return s.changes
}

// List returns every registered account, password hashes included.
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.log(ctx).Err(err).Str("func", "userService.List").Msg("error loading users")
		return nil, fmt.Errorf("%w: %w", ErrUsersNotLoaded, err)
	}
	return users, nil
}

// Register creates a new account from input and publishes a
// [models.ActionCreated] change.
//
// The email is trimmed and lower-cased before it is checked and stored, so
// addresses differing only in case are the same account. The password is
// stored as a bcrypt hash at the configured cost; the plain password is never
// persisted or logged.
//
// Parameters:
//   - ctx:   request-scoped context; its logger, when attached, is used.
//   - input: name, email, phone and password as entered by the user. Every
//     field is validated before any storage access.
//
// Error handling:
//   - Validation failures are returned unchanged.
//   - An email that is already registered → [ErrEmailTaken]. This is checked
//     up front and again through [store.ErrEmailAlreadyExists] on insert.
//   - Lookup, hashing or storage failures are logged and wrapped in
//     [ErrUserNotSaved].
func (s *userService) Register(ctx context.Context, input models.UserInput) (models.User, error) {
	log := s.log(ctx).With().Str("func", "userService.Register").Logger()

	if err := s.validator.Validate(ctx, input); err != nil {
		return models.User{}, err
	}
	email := normalizeEmail(input.Email)

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, ErrEmailTaken
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("email", email).Msg("error checking email availability")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotSaved, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotSaved, err)
	}

	user, err := s.users.Add(ctx, models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("error saving user")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotSaved, err)
	}

	s.publish(ctx, models.ActionCreated, user.ID)
	return user, nil
}

// Login verifies credentials and, on success, stores the account's email
// under [CurrentUserKey] as the single local session. A later Login replaces
// the previous session.
//
// Error handling:
//   - An invalid email or an empty password → validation error.
//   - No account with that email → wrapped in [ErrUserNotFound].
//   - A password that does not match the stored hash → [ErrWrongPassword].
//   - Lookup failures are wrapped in [ErrUsersNotLoaded]; failure to store
//     the session marker is wrapped in [ErrUserNotUpdated].
func (s *userService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := s.log(ctx).With().Str("func", "userService.Login").Logger()

	if err := s.validator.Validate(ctx, models.UserInput{Email: credentials.Email}, validators.FieldEmail); err != nil {
		return models.User{}, err
	}
	if credentials.Password == "" {
		return models.User{}, validators.ErrEmptyPassword
	}
	email := normalizeEmail(credentials.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("error looking up user")
		return models.User{}, fmt.Errorf("%w: %w", ErrUsersNotLoaded, err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		log.Info().Str("email", email).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if err = s.values.Set(ctx, CurrentUserKey, user.Email); err != nil {
		log.Err(err).Msg("error saving session")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotUpdated, err)
	}

	log.Info().Int64("id", user.ID).Msg("user logged in")
	return user, nil
}

// CurrentUser resolves the session marker written by Login.
//
// Error handling:
//   - No session, or a session whose account has since been deleted →
//     [ErrNotLoggedIn].
//   - Any other storage failure is logged and wrapped in [ErrUsersNotLoaded].
func (s *userService) CurrentUser(ctx context.Context) (models.User, error) {
	log := s.log(ctx).With().Str("func", "userService.CurrentUser").Logger()

	email, err := s.values.Get(ctx, CurrentUserKey)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrNotLoggedIn
	}
	if err != nil {
		log.Err(err).Msg("error reading session")
		return models.User{}, fmt.Errorf("%w: %w", ErrUsersNotLoaded, err)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("error looking up session user")
		return models.User{}, fmt.Errorf("%w: %w", ErrUsersNotLoaded, err)
	}
	return user, nil
}

// Logout clears the session marker. Logging out without a session is not an
// error.
func (s *userService) Logout(ctx context.Context) error {
	if err := s.values.Delete(ctx, CurrentUserKey); err != nil {
		s.log(ctx).Err(err).Str("func", "userService.Logout").Msg("error clearing session")
		return fmt.Errorf("%w: %w", ErrUserNotUpdated, err)
	}
	return nil
}

// UpdateProfile changes name, email and phone of the account with id and
// publishes a [models.ActionUpdated] change. The password hash is kept.
//
// When the email changes and the session points at the old address, the
// session is moved to the new one so the user stays logged in. A failure to
// move it is logged and does not fail the update.
//
// Error handling:
//   - Validation failures are returned unchanged.
//   - No account with id → wrapped in [ErrUserNotFound].
//   - The new email belongs to another account → [ErrEmailTaken].
//   - Other storage failures are logged and wrapped in [ErrUserNotUpdated].
func (s *userService) UpdateProfile(ctx context.Context, id int64, input models.UserInput) (models.User, error) {
	log := s.log(ctx).With().Str("func", "userService.UpdateProfile").Int64("id", id).Logger()

	if err := s.validator.Validate(ctx, input, validators.FieldName, validators.FieldEmail, validators.FieldPhone); err != nil {
		return models.User{}, err
	}

	current, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	if err != nil {
		log.Err(err).Msg("error loading user")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotUpdated, err)
	}

	updated := current
	updated.Name = strings.TrimSpace(input.Name)
	updated.Email = normalizeEmail(input.Email)
	updated.Phone = strings.TrimSpace(input.Phone)

	if updated.Email != current.Email {
		other, lookupErr := s.users.GetUserByEmail(ctx, updated.Email)
		switch {
		case lookupErr == nil && other.ID != id:
			return models.User{}, ErrEmailTaken
		case lookupErr != nil && !errors.Is(lookupErr, store.ErrUserNotFound):
			log.Err(lookupErr).Msg("error checking email availability")
			return models.User{}, fmt.Errorf("%w: %w", ErrUserNotUpdated, lookupErr)
		}
	}

	err = s.users.Update(ctx, updated)
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, fmt.Errorf("%w: %w", ErrEmailTaken, err)
	case errors.Is(err, store.ErrNotFound):
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case err != nil:
		log.Err(err).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotUpdated, err)
	}

	// Keep the session pointing at the same account after an email change.
	if updated.Email != current.Email {
		if sessionEmail, getErr := s.values.Get(ctx, CurrentUserKey); getErr == nil && sessionEmail == current.Email {
			if setErr := s.values.Set(ctx, CurrentUserKey, updated.Email); setErr != nil {
				log.Warn().Err(setErr).Msg("error moving session to the new email")
			}
		}
	}

	s.publish(ctx, models.ActionUpdated, id)
	return updated, nil
}

// ResetPassword replaces the password of the account registered under email
// with a bcrypt hash of newPassword. There is no token flow: the email alone
// identifies the account.
//
// Error handling:
//   - An invalid email or password → validation error.
//   - No account with that email → wrapped in [ErrUserNotFound].
//   - Hashing or storage failures are logged and wrapped in
//     [ErrUserNotUpdated].
func (s *userService) ResetPassword(ctx context.Context, email, newPassword string) error {
	log := s.log(ctx).With().Str("func", "userService.ResetPassword").Logger()

	input := models.UserInput{Email: email, Password: newPassword}
	if err := s.validator.Validate(ctx, input, validators.FieldEmail, validators.FieldPassword); err != nil {
		return err
	}
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return fmt.Errorf("%w: %w", ErrUserNotUpdated, err)
	}

	err = s.users.UpdateUserPassword(ctx, email, string(hash))
	if errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrUserNotUpdated, err)
	}

	log.Info().Str("email", email).Msg("password reset")
	return nil
}

// Delete removes the account with id. The session marker is left in place;
// CurrentUser reports [ErrNotLoggedIn] once its account is gone.
func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		s.log(ctx).Err(err).Str("func", "userService.Delete").Int64("id", id).Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrUserNotDeleted, err)
	}
	s.publish(ctx, models.ActionDeleted, id)
	return nil
}

// DeleteAll removes every account and publishes one
// [models.ActionDeletedAll] change.
func (s *userService) DeleteAll(ctx context.Context) error {
	if err := s.users.DeleteAll(ctx); err != nil {
		s.log(ctx).Err(err).Str("func", "userService.DeleteAll").Msg("error deleting users")
		return fmt.Errorf("%w: %w", ErrUsersNotDeleted, err)
	}
	s.publish(ctx, models.ActionDeletedAll, 0)
	return nil
}

func (s *userService) publish(ctx context.Context, action models.Action, id int64) {
	_ = s.changes.Publish(ctx, models.Change{Table: models.TableUsers, Action: action, ID: id})
}

func (s *userService) log(ctx context.Context) *logger.Logger {
	return logger.Ctx(ctx, s.logger)
}

// normalizeEmail is the canonical form used for storage and lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
