package properties

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/internal/validate"
	"github.com/staysuite/staysuite-backend/pkg/db"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
	"github.com/staysuite/staysuite-backend/pkg/metrics"
)

const (
	entityProperty = "property"
	entityRoom     = "room"
	entityPhoto    = "property_photo"
)

// Service exposes property, room, and photo management operations.
type Service interface {
	Create(ctx context.Context, input CreatePropertyInput) (*models.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, filters ListFilters) ([]models.Property, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*models.Property, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	CreateRoom(ctx context.Context, input CreateRoomInput) (*models.Room, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context, filters RoomFilters) ([]models.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) (bool, error)

	CreatePhoto(ctx context.Context, input CreatePhotoInput) (*models.PropertyPhoto, error)
	GetPhotoByID(ctx context.Context, id uuid.UUID) (*models.PropertyPhoto, error)
	ListPhotos(ctx context.Context, filters PhotoFilters) ([]models.PropertyPhoto, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, input UpdatePhotoInput) (*models.PropertyPhoto, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StoreMetrics
}

// NewService constructs a properties service instance.
func NewService(repo *Repository, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("properties repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreatePropertyInput) (property *models.Property, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityProperty, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	property, err = s.repo.Create(ctx, input.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert property")
	}
	return property, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (property *models.Property, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityProperty, "get", start, err) }()

	property, err = s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (rows []models.Property, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityProperty, "list", start, err) }()

	rows, err = s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list properties")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (property *models.Property, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityProperty, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	property, err = s.repo.UpdateFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update property")
	}
	return property, nil
}

// Delete removes a property along with its rooms, photos, bookings, tasks,
// and inventory items.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityProperty, "delete", start, err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete property")
	}
	return deleted, nil
}

func (s *service) CreateRoom(ctx context.Context, input CreateRoomInput) (room *models.Room, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityRoom, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	room, err = s.repo.CreateRoom(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "property does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert room")
	}
	return room, nil
}

func (s *service) GetRoomByID(ctx context.Context, id uuid.UUID) (room *models.Room, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityRoom, "get", start, err) }()

	room, err = s.repo.FindRoomByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	return room, nil
}

func (s *service) ListRooms(ctx context.Context, filters RoomFilters) (rows []models.Room, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityRoom, "list", start, err) }()

	rows, err = s.repo.ListRooms(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rooms")
	}
	return rows, nil
}

func (s *service) UpdateRoom(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (room *models.Room, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityRoom, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	room, err = s.repo.UpdateRoomFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room")
	}
	return room, nil
}

func (s *service) DeleteRoom(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityRoom, "delete", start, err) }()

	deleted, err = s.repo.DeleteRoom(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete room")
	}
	return deleted, nil
}

func (s *service) CreatePhoto(ctx context.Context, input CreatePhotoInput) (photo *models.PropertyPhoto, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPhoto, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	photo, err = s.repo.CreatePhoto(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "property does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert photo")
	}
	return photo, nil
}

func (s *service) GetPhotoByID(ctx context.Context, id uuid.UUID) (photo *models.PropertyPhoto, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPhoto, "get", start, err) }()

	photo, err = s.repo.FindPhotoByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load photo")
	}
	return photo, nil
}

func (s *service) ListPhotos(ctx context.Context, filters PhotoFilters) (rows []models.PropertyPhoto, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPhoto, "list", start, err) }()

	rows, err = s.repo.ListPhotos(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list photos")
	}
	return rows, nil
}

func (s *service) UpdatePhoto(ctx context.Context, id uuid.UUID, input UpdatePhotoInput) (photo *models.PropertyPhoto, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPhoto, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	photo, err = s.repo.UpdatePhotoFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update photo")
	}
	return photo, nil
}

func (s *service) DeletePhoto(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPhoto, "delete", start, err) }()

	deleted, err = s.repo.DeletePhoto(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete photo")
	}
	return deleted, nil
}
