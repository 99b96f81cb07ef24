// Package v1 exposes the platform's REST API: post and relation CRUD plus
// the lineage traversal endpoints consumed by the UI layer.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
	"github.com/Jessyabc/publicbusiness/internal/profile"
	"github.com/Jessyabc/publicbusiness/server/service/lineage"
	"github.com/Jessyabc/publicbusiness/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Lineage *lineage.Service
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, lineageService *lineage.Service) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Store:   store,
		Lineage: lineageService,
	}
}

// RegisterRoutes registers all v1 routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/posts", s.createPost)
	g.GET("/posts", s.listPosts)
	g.GET("/posts/:uid", s.getPost)
	g.PATCH("/posts/:uid", s.updatePost)
	g.DELETE("/posts/:uid", s.deletePost)

	g.POST("/relations", s.createRelation)
	g.DELETE("/relations/:id", s.deleteRelation)
	g.GET("/posts/:uid/relations", s.listPostRelations)
	g.POST("/posts/:uid/cross-links", s.createCrossLinks)

	g.GET("/posts/:uid/root", s.getThreadRoot)
	g.GET("/posts/:uid/thread", s.getThread)
	g.GET("/posts/:uid/breadcrumbs", s.getBreadcrumbs)
	g.GET("/posts/:uid/orbit", s.getOrbit)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// replyError maps the platform error taxonomy onto HTTP statuses. Untyped
// errors stay opaque 500s; their details go to the log, not the client.
func replyError(c echo.Context, err error) error {
	code := pberrors.CodeOf(err)
	status := http.StatusInternalServerError
	message := err.Error()

	switch code {
	case pberrors.ErrCodeInvalidArgument:
		status = http.StatusBadRequest
	case pberrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case pberrors.ErrCodeAlreadyExists:
		status = http.StatusConflict
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		message = "internal server error"
	}

	return c.JSON(status, errorResponse{Code: string(code), Message: message})
}

// getPostByUID resolves a route UID to a post, translating absence into the
// NOT_FOUND error class.
func (s *APIV1Service) getPostByUID(c echo.Context, uid string) (*store.Post, error) {
	post, err := s.Store.GetPost(c.Request().Context(), &store.FindPost{UID: &uid})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, pberrors.NewNotFound("post %q not found", uid)
	}
	return post, nil
}
