package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gym-api/internal/domain"
	"go-gym-api/internal/service"
	httpez "go-gym-api/internal/transport/http/ez"
)

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// MountUserActions mounts the public identity routes on api and the
// token-gated ones on authed.
func MountUserActions(api, authed *gin.RouterGroup, idn *service.Identity) {
	e := httpez.New(api)
	ea := httpez.New(authed)

	httpez.RegisterAction(e, httpez.Action[service.RegisterInput, *domain.User]{
		Method: http.MethodPost, Path: "/users/register", Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RegisterInput) (*domain.User, error) {
			return idn.Register(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(e, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost, Path: "/users/login", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, token, err := idn.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Token: token, User: u}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.User]{
		Method: http.MethodGet, Path: "/users", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return idn.Users(c.Request.Context())
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet, Path: "/users/:id", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return idn.User(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.UserInput, gin.H]{
		Method: http.MethodPut, Path: "/users/:id", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.UserInput) (gin.H, error) {
			id := c.Param("id")
			if err := idn.UpdateUser(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.UserPatch, gin.H]{
		Method: http.MethodPatch, Path: "/users/:id", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.UserPatch) (gin.H, error) {
			id := c.Param("id")
			if err := idn.PatchUser(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[service.PhenotypeInput, gin.H]{
		Method: http.MethodPatch, Path: "/users/:id/phenotype", Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.PhenotypeInput) (gin.H, error) {
			id := c.Param("id")
			if err := idn.PatchPhenotype(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPut, Path: "/users/:id/archive", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := idn.SoftDeleteUser(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPut, Path: "/users/:id/restore", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := idn.RestoreUser(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := idn.HardDeleteUser(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.RegisterAction(ea, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet, Path: "/me", Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			uid := c.GetString("userId")
			if uid == "" {
				return nil, httpez.Unauthorized("unauthorized")
			}
			return idn.User(c.Request.Context(), uid)
		},
	})
}
