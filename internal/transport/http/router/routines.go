package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/service"
	httpez "go-gym-api/internal/transport/http/ez"
)

func MountRoutineActions(api *gin.RouterGroup, cat *service.Catalog) {
	e := httpez.New(api)

	httpez.RegisterAction(e, httpez.Action[service.RoutineSearch, []domain.Routine]{
		Method: http.MethodGet, Path: "/routines", Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *service.RoutineSearch) ([]domain.Routine, error) {
			return cat.SearchRoutines(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, any]{
		Method: http.MethodGet, Path: "/routines/:id", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			if c.Query("detailed") == "true" {
				return cat.RoutineDetail(c.Request.Context(), c.Param("id"))
			}
			return cat.Routine(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.RoutineInput, gin.H]{
		Method: http.MethodPost, Path: "/routines", Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RoutineInput) (gin.H, error) {
			id, err := cat.CreateRoutine(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.RoutineInput, gin.H]{
		Method: http.MethodPut, Path: "/routines/:id", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.RoutineInput) (gin.H, error) {
			id := c.Param("id")
			if err := cat.UpdateRoutine(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.RoutinePatch, gin.H]{
		Method: http.MethodPatch, Path: "/routines/:id", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.RoutinePatch) (gin.H, error) {
			id := c.Param("id")
			if err := cat.PatchRoutine(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPut, Path: "/routines/:id/archive", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := cat.DeleteRoutine(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPut, Path: "/routines/:id/restore", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := cat.RestoreRoutine(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete, Path: "/routines/:id", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := cat.HardDeleteRoutine(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[domain.ExerciseEntry, *domain.Routine]{
		Method: http.MethodPost, Path: "/routines/:id/exercises", Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.ExerciseEntry) (*domain.Routine, error) {
			return cat.AddRoutineEntry(c.Request.Context(), c.Param("id"), *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.Routine]{
		Method: http.MethodDelete, Path: "/routines/:id/exercises/:exerciseID", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Routine, error) {
			return cat.RemoveRoutineEntry(c.Request.Context(), c.Param("id"), c.Param("exerciseID"))
		},
	})
}
