package httpserver

import (
	"net"
	"net/http"
	"strings"
)

// register handles POST /api/auth/register.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "username, password and email are required")
		return
	}

	session, err := s.auth.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, session.Token, s.auth.TokenTTL())
	writeJSON(w, http.StatusCreated, sessionResponse{
		Success: true,
		User:    session.Account,
		Token:   session.Token,
	})
}

// login handles POST /api/auth/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Username, req.Password, clientKey(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, session.Token, s.auth.TokenTTL())
	writeJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		User:    session.Account,
		Token:   session.Token,
	})
}

// logout handles POST /api/auth/logout. Tokens are stateless; logging out only
// drops the cookie.
func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// me handles GET /api/auth/me. An absent or invalid token yields {"user": null}.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	view, err := s.auth.Me(r.Context(), s.tokenFromRequest(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{User: view})
}

// clientKey identifies the caller for login rate limiting. Forwarded headers
// only reach RemoteAddr when the server trusts its proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
