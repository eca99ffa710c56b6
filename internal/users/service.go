package users

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/internal/validate"
	"github.com/staysuite/staysuite-backend/pkg/config"
	"github.com/staysuite/staysuite-backend/pkg/db"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
	"github.com/staysuite/staysuite-backend/pkg/metrics"
	"github.com/staysuite/staysuite-backend/pkg/security"
)

const (
	entityUser       = "user"
	entityPreference = "user_preference"
)

// Service exposes account and preference management operations. Passwords
// are argon2id hashed on the way in and never stored in plaintext.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters ListFilters) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)

	CreatePreference(ctx context.Context, input CreatePreferenceInput) (*models.UserPreference, error)
	GetPreferenceByID(ctx context.Context, id uuid.UUID) (*models.UserPreference, error)
	ListPreferences(ctx context.Context, filters PreferenceFilters) ([]models.UserPreference, error)
	UpdatePreference(ctx context.Context, id uuid.UUID, input UpdatePreferenceInput) (*models.UserPreference, error)
	DeletePreference(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo     *Repository
	password config.PasswordConfig
	metrics  *metrics.StoreMetrics
}

// NewService constructs a users service instance.
func NewService(repo *Repository, password config.PasswordConfig, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, password: password, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (user *models.User, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid user role %q", input.Role))
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err = s.repo.Create(ctx, input.toModel(hash))
	if err != nil {
		if db.IsUniqueViolation(err, "email") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert user")
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (user *models.User, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "get", start, err) }()

	user, err = s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (user *models.User, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "get", start, err) }()

	user, err = s.repo.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (rows []models.User, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "list", start, err) }()

	if filters.Role != nil && !filters.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid user role %q", *filters.Role))
	}
	rows, err = s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (user *models.User, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid user role %q", *input.Role))
	}

	var passwordHash *string
	if input.Password != nil {
		hash, hashErr := security.HashPassword(*input.Password, s.password)
		if hashErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, hashErr, "hash password")
		}
		passwordHash = &hash
	}

	user, err = s.repo.UpdateFields(ctx, id, input.fields(passwordHash))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if db.IsUniqueViolation(err, "email") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return user, nil
}

// Delete removes an account along with its preference row.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "delete", start, err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return deleted, nil
}

// VerifyCredentials checks the password against the stored hash and stamps
// last_login_at on success. A bad password and an unknown email both come
// back as NOT_FOUND so callers cannot probe for registered addresses.
func (s *service) VerifyCredentials(ctx context.Context, email, password string) (user *models.User, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityUser, "verify", start, err) }()

	user, err = s.repo.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid credentials")
	}

	user, err = s.repo.UpdateFields(ctx, user.ID, map[string]any{"last_login_at": time.Now().UTC()})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp last login")
	}
	return user, nil
}

func (s *service) CreatePreference(ctx context.Context, input CreatePreferenceInput) (pref *models.UserPreference, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPreference, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	pref, err = s.repo.CreatePreference(ctx, input.toModel())
	if err != nil {
		if db.IsUniqueViolation(err, "user_id") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "user already has preferences")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "user does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert preference")
	}
	return pref, nil
}

func (s *service) GetPreferenceByID(ctx context.Context, id uuid.UUID) (pref *models.UserPreference, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPreference, "get", start, err) }()

	pref, err = s.repo.FindPreferenceByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "preference not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preference")
	}
	return pref, nil
}

func (s *service) ListPreferences(ctx context.Context, filters PreferenceFilters) (rows []models.UserPreference, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPreference, "list", start, err) }()

	rows, err = s.repo.ListPreferences(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list preferences")
	}
	return rows, nil
}

func (s *service) UpdatePreference(ctx context.Context, id uuid.UUID, input UpdatePreferenceInput) (pref *models.UserPreference, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPreference, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	pref, err = s.repo.UpdatePreferenceFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "preference not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update preference")
	}
	return pref, nil
}

func (s *service) DeletePreference(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPreference, "delete", start, err) }()

	deleted, err = s.repo.DeletePreference(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete preference")
	}
	return deleted, nil
}
