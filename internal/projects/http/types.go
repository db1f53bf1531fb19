package http

import (
	"context"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
)

// Store is the part of storage.Storage the project endpoints use.
type Store interface {
	GetUserProjects(ctx context.Context, userID string) ([]projects.Project, error)
	GetProject(ctx context.Context, id string) (*projects.Project, error)
	CreateProject(ctx context.Context, in projects.CreateInput, userID string) (*projects.Project, error)
	UpdateProject(ctx context.Context, id, userID string, in projects.UpdateInput) (*projects.Project, error)
	DeleteProject(ctx context.Context, id, userID string) (bool, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

type createReq struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Link        *string `json:"link" binding:"omitempty,url|len=0"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url|len=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=active completed on-hold cancelled"`
}

func (r createReq) input() projects.CreateInput {
	return projects.CreateInput{
		Name:        r.Name,
		Description: r.Description,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Status:      projects.Status(r.Status),
	}
}

// updateReq uses pointers so an omitted field is left untouched.
type updateReq struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Link        *string `json:"link" binding:"omitempty,url|len=0"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url|len=0"`
	Status      *string `json:"status" binding:"omitempty,oneof=active completed on-hold cancelled"`
}

func (r updateReq) input() projects.UpdateInput {
	in := projects.UpdateInput{
		Name:        r.Name,
		Description: r.Description,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
	}
	if r.Status != nil {
		s := projects.Status(*r.Status)
		in.Status = &s
	}
	return in
}
