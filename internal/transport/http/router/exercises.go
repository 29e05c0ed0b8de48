package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/service"
	httpez "go-gym-api/internal/transport/http/ez"
)

func MountExerciseActions(api *gin.RouterGroup, cat *service.Catalog) {
	e := httpez.New(api)

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.Exercise]{
		Method: http.MethodGet, Path: "/exercises", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Exercise, error) {
			return cat.Exercises(c.Request.Context())
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.ExerciseSearch, []domain.Exercise]{
		Method: http.MethodGet, Path: "/exercises/search", Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *service.ExerciseSearch) ([]domain.Exercise, error) {
			return cat.SearchExercises(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.Exercise]{
		Method: http.MethodGet, Path: "/exercises/:id", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Exercise, error) {
			return cat.Exercise(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.ExerciseInput, gin.H]{
		Method: http.MethodPost, Path: "/exercises", Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.ExerciseInput) (gin.H, error) {
			id, err := cat.CreateExercise(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.ExerciseInput, gin.H]{
		Method: http.MethodPut, Path: "/exercises/:id", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.ExerciseInput) (gin.H, error) {
			id := c.Param("id")
			if err := cat.UpdateExercise(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.ExercisePatch, gin.H]{
		Method: http.MethodPatch, Path: "/exercises/:id", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.ExercisePatch) (gin.H, error) {
			id := c.Param("id")
			if err := cat.PatchExercise(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPut, Path: "/exercises/:id/archive", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := cat.DeleteExercise(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPut, Path: "/exercises/:id/restore", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := cat.RestoreExercise(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete, Path: "/exercises/:id", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := cat.HardDeleteExercise(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
