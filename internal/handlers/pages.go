package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/zinal-app/apiserver/internal/logger"
	"github.com/zinal-app/apiserver/internal/services"
	"github.com/zinal-app/apiserver/web"
)

// PageHandler renders the HTML pages: landing, login, dashboard, admin.
type PageHandler struct {
	auth      *AuthHandler
	users     *services.UserService
	templates *template.Template
	log       logger.ILogger
}

func NewPageHandler(auth *AuthHandler, users *services.UserService, log logger.ILogger) (*PageHandler, error) {
	templates, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		auth:      auth,
		users:     users,
		templates: templates,
		log:       log,
	}, nil
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, "landing.html", nil)
}

// LoginForm shows the login page.
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", loginPage{})
}

// Login handles the form POST. Failures re-render the page with the error
// message at HTTP 200; this is the page flow, not the JSON API.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", loginPage{Error: "Preencha usuário/email e senha."})
		return
	}

	identifier := r.PostFormValue("identifier")
	password := r.PostFormValue("password")
	if identifier == "" || password == "" {
		h.render(w, "login.html", loginPage{Error: "Preencha usuário/email e senha."})
		return
	}

	user, err := h.users.Authenticate(r.Context(), identifier, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.render(w, "login.html", loginPage{Error: "Credenciais inválidas!"})
		case errors.Is(err, services.ErrAccessExpired):
			h.render(w, "login.html", loginPage{Error: "Acesso expirado."})
		default:
			h.log.Error("login failed", logger.Error(err))
			h.render(w, "login.html", loginPage{Error: "Erro interno. Tente novamente."})
		}
		return
	}

	target, err := h.auth.EstablishSession(w, r, user)
	if err != nil {
		h.log.Error("failed to establish session", logger.Error(err))
		h.render(w, "login.html", loginPage{Error: "Erro interno. Tente novamente."})
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Dashboard requires a session; anonymous visitors are sent to the login
// page.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := h.auth.SessionFromRequest(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	user, err := h.users.GetByID(r.Context(), sess.UserID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.render(w, "dashboard.html", userPage{Username: user.Username})
}

// Admin requires an admin session; regular users land on their dashboard.
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	sess, err := h.auth.SessionFromRequest(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if !sess.IsAdmin {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	user, err := h.users.GetByID(r.Context(), sess.UserID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.render(w, "admin.html", userPage{Username: user.Username})
}

type loginPage struct {
	Error string
}

type userPage struct {
	Username string
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("template render failed", logger.String("template", name), logger.Error(err))
	}
}
