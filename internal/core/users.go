package core

import (
	"context"
	"log/slog"

	"github.com/siahsang/blog-orms/models"
	"go.opentelemetry.io/otel/attribute"
)

type UserService struct {
	log   *slog.Logger
	users UserRepository
}

func NewUserService(users UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		log:   log,
		users: users,
	}
}

func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	ctx, span := startSpan(ctx, "UserService.FindAll")
	defer span.End()

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	return users, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	ctx, span := startSpan(ctx, "UserService.FindByID", attribute.String("user.id", id))
	defer span.End()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}
	if user == nil {
		return nil, recordError(span, notFound("User with id %s not found", id))
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	ctx, span := startSpan(ctx, "UserService.Create")
	defer span.End()

	user, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, recordError(span, err)
	}

	s.log.InfoContext(ctx, "User created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input models.UpdateUserInput) (*models.User, error) {
	ctx, span := startSpan(ctx, "UserService.Update", attribute.String("user.id", id))
	defer span.End()

	user, err := s.users.Update(ctx, id, input)
	if err != nil {
		return nil, recordError(span, err)
	}
	if user == nil {
		return nil, recordError(span, notFound("User with id %s not found", id))
	}

	s.log.InfoContext(ctx, "User updated Successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Delete deactivates the user. The row stays so articles and comments keep
// their author.
func (s *UserService) Delete(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "UserService.Delete", attribute.String("user.id", id))
	defer span.End()

	inactive := false
	user, err := s.users.Update(ctx, id, models.UpdateUserInput{Active: &inactive})
	if err != nil {
		return recordError(span, err)
	}
	if user == nil {
		return recordError(span, notFound("User with id %s not found", id))
	}

	s.log.InfoContext(ctx, "User deactivated", "user_id", user.ID)
	return nil
}
