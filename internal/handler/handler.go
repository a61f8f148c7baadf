package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"bookhub/internal/authz"
	"bookhub/internal/config"
	"bookhub/internal/repository"
	"bookhub/internal/service"
)

type Handlers struct {
	AuthService         service.AuthService
	UserService         service.UserService
	CatalogService      service.CatalogService
	PostService         service.PostService
	NotificationService service.NotificationService
	TablesService       service.TablesService
	UserRepo            repository.UserRepository
	FollowRepo          repository.FollowRepository
	AuthorRepo          repository.AuthorRepository
	BookRepo            repository.BookRepository
	LibraryRepo         repository.LibraryRepository
	PostRepo            repository.PostRepository
	CommentRepo         repository.CommentRepository
	Cfg                 *config.Config
	Validate            *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:         service.Auth,
		UserService:         service.User,
		CatalogService:      service.Catalog,
		PostService:         service.Post,
		NotificationService: service.Notification,
		TablesService:       service.Tables,
		UserRepo:            repo.User,
		FollowRepo:          repo.Follow,
		AuthorRepo:          repo.Author,
		BookRepo:            repo.Book,
		LibraryRepo:         repo.Library,
		PostRepo:            repo.Post,
		CommentRepo:         repo.Comment,
		Cfg:                 config,
		Validate:            validator.New(),
	}
}

// principal builds the authorization principal from the values the auth
// middleware put on the request context.
func principal(r *http.Request) authz.Principal {
	userID, _ := r.Context().Value("userID").(string)
	role, _ := r.Context().Value("role").(string)
	return authz.Principal{
		UserID:        userID,
		Role:          authz.Role(role),
		Authenticated: userID != "",
	}
}

// authorize runs the authz check and, on denial, writes 401 for anonymous
// principals and 403 for authenticated ones. Returns true when allowed.
func authorize(w http.ResponseWriter, r *http.Request, perm authz.Permission, res authz.Resource) bool {
	p := principal(r)
	decision := authz.Check(p, perm, res)
	if decision.Allowed {
		return true
	}
	if !p.Authenticated {
		WriteError(w, "authentication required", http.StatusUnauthorized)
	} else {
		WriteError(w, "forbidden: "+decision.Reason, http.StatusForbidden)
	}
	return false
}

// pagination resolves ?page and ?limit against the configured bounds and
// returns limit and offset.
func (h *Handlers) pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > h.Cfg.MaxPageSize {
		limit = h.Cfg.DefaultPageSize
	}

	return limit, (page - 1) * limit
}
