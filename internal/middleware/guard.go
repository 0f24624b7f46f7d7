package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/model"
)

const (
	LoginPath              = "/login"
	SignupPath             = "/signup"
	CandidateDashboardPath = "/candidate-dashboard"
	EmployerDashboardPath  = "/employer-dashboard"
)

// Area classifies a request path for the route guard.
type Area int

const (
	AreaOther Area = iota
	AreaAuthPage
	AreaCandidate
	AreaEmployer
)

// ClassifyPath maps a request path to its guarded area using prefix matching.
func ClassifyPath(path string) Area {
	switch {
	case strings.HasPrefix(path, LoginPath), strings.HasPrefix(path, SignupPath):
		return AreaAuthPage
	case strings.HasPrefix(path, CandidateDashboardPath):
		return AreaCandidate
	case strings.HasPrefix(path, EmployerDashboardPath):
		return AreaEmployer
	default:
		return AreaOther
	}
}

// Decision is the outcome of the route guard. An empty Redirect means pass.
type Decision struct {
	Redirect string
}

// Pass reports whether the request continues to its handler.
func (d Decision) Pass() bool {
	return d.Redirect == ""
}

// Decide applies the guard table to a path and an optional verified session.
func Decide(path string, s Session, ok bool) Decision {
	area := ClassifyPath(path)
	if area == AreaOther {
		return Decision{}
	}

	if !ok {
		if area == AreaCandidate || area == AreaEmployer {
			return Decision{Redirect: LoginPath}
		}
		return Decision{}
	}

	home := homeFor(s.Role)
	switch area {
	case AreaAuthPage:
		return Decision{Redirect: home}
	case AreaCandidate:
		if s.Role != model.RoleCandidate {
			return Decision{Redirect: home}
		}
	case AreaEmployer:
		if s.Role != model.RoleEmployer {
			return Decision{Redirect: home}
		}
	}
	return Decision{}
}

func homeFor(role model.Role) string {
	if role == model.RoleEmployer {
		return EmployerDashboardPath
	}
	return CandidateDashboardPath
}

// RouteGuard redirects requests for role-scoped pages according to Decide.
// An undecodable session cookie is treated as no session.
func RouteGuard(codec *crypto.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ClassifyPath(r.URL.Path) == AreaOther {
				next.ServeHTTP(w, r)
				return
			}

			s, ok := SessionFromRequest(r, codec)
			if !ok {
				if _, err := r.Cookie(SessionCookieName); err == nil {
					slog.Warn("session token rejected by route guard", "path", r.URL.Path)
				}
			}

			d := Decide(r.URL.Path, s, ok)
			if !d.Pass() {
				http.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
