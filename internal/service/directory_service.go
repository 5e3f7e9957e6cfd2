package service

import (
	"context"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
)

// DirectoryService is the thin CRUD layer for the client and user directories.
// Both are addressed by CI (national id) in text commands and by uuid in JSON.
type DirectoryService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	GetClientByCI(ctx context.Context, ci string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context) ([]dto.ClientResponse, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetUserByCI(ctx context.Context, ci string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type directoryService struct {
	clients repository.ClientRepository
	users   repository.UserRepository
}

func NewDirectoryService(clients repository.ClientRepository, users repository.UserRepository) DirectoryService {
	return &directoryService{clients: clients, users: users}
}

func (s *directoryService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if _, err := s.clients.FindByCI(ctx, req.CI); err == nil {
		return nil, domain.Conflict("client already exists with ci %s", req.CI)
	}
	client := &model.Client{
		CI:      req.CI,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *directoryService) GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("client not found with id %s", id)
	}
	return clientToResponse(client), nil
}

func (s *directoryService) GetClientByCI(ctx context.Context, ci string) (*dto.ClientResponse, error) {
	client, err := s.clients.FindByCI(ctx, ci)
	if err != nil {
		return nil, domain.NotFound("client not found with ci %s", ci)
	}
	return clientToResponse(client), nil
}

func (s *directoryService) ListClients(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, *clientToResponse(&clients[i]))
	}
	return out, nil
}

func (s *directoryService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.users.FindByCI(ctx, req.CI); err == nil {
		return nil, domain.Conflict("user already exists with ci %s", req.CI)
	}
	role := req.Role
	if role == "" {
		role = "seller"
	}
	user := &model.User{
		CI:     req.CI,
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
		Active: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *directoryService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("user not found with id %s", id)
	}
	return userToResponse(user), nil
}

func (s *directoryService) GetUserByCI(ctx context.Context, ci string) (*dto.UserResponse, error) {
	user, err := s.users.FindByCI(ctx, ci)
	if err != nil {
		return nil, domain.NotFound("user not found with ci %s", ci)
	}
	return userToResponse(user), nil
}

func (s *directoryService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return out, nil
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:    c.ID.String(),
		CI:    c.CI,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:   u.ID.String(),
		CI:   u.CI,
		Name: u.Name,
		Role: u.Role,
	}
}
