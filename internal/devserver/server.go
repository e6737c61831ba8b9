// Package devserver is a local stand-in for the court-system backend. It
// speaks the same wire format as the real endpoints (JSON over HTTP, {d:...}
// envelope, cookie-based session, 419 on expiry) so the CLI can be exercised
// end to end without the production environment.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/ngcs-mobile/courtclient/internal/common"
	"github.com/ngcs-mobile/courtclient/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookie = "NGCSsession"

type Config struct {
	// Demo credential; PasswordHash is a bcrypt hash.
	Username     string
	PasswordHash []byte

	JWTSecret  []byte
	SessionTTL time.Duration

	ServerVersion              string
	MinCompatibleServerVersion float64
}

type Server struct {
	cfg    Config
	log    logging.Logger
	router *mux.Router
}

func New(cfg Config, log logging.Logger) *Server {
	s := &Server{cfg: cfg, log: log.With("component", "devserver")}

	r := mux.NewRouter()
	r.HandleFunc("/LoginService.asmx/Login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/LoginService.asmx/LogOut", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/ServerVersionService.asmx/GetVersion", s.handleGetVersion).Methods(http.MethodPost)
	r.HandleFunc("/DeviceIdService.asmx/ApplyDeviceId", s.requireAuth(s.handleApplyDeviceID)).Methods(http.MethodPost)
	r.HandleFunc("/mDataProvider.asmx/GetUnreadNumbers", s.requireAuth(s.handleUnreadNumbers)).Methods(http.MethodPost)
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeEnvelope(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"d": payload})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if req.Username != s.cfg.Username ||
		bcrypt.CompareHashAndPassword(s.cfg.PasswordHash, []byte(req.Password)) != nil {
		s.log.Warn(r.Context(), "login rejected", "username", req.Username)
		writeEnvelope(w, false)
		return
	}

	token, err := generateToken(req.Username, s.cfg.JWTSecret, s.cfg.SessionTTL)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	s.log.Info(r.Context(), "login accepted", "username", req.Username)
	writeEnvelope(w, true)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeEnvelope(w, nil)
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, map[string]any{
		"ServerVersion":              s.cfg.ServerVersion,
		"MinCompatibleServerVersion": s.cfg.MinCompatibleServerVersion,
	})
}

func (s *Server) handleApplyDeviceID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEI  string `json:"imei"`
		ICCID string `json:"iccid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.log.Info(r.Context(), "device id applied", "imei", req.IMEI, "iccid", req.ICCID)
	writeEnvelope(w, nil)
}

func (s *Server) handleUnreadNumbers(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, []int{2, 0, 5})
}

type ctxKey string

const usernameKey ctxKey = "username"

// requireAuth validates the session cookie. A missing or invalid session
// answers 401; an expired one answers 419, mirroring the production
// backend's auth-timeout convention.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		username, err := usernameFromToken(cookie.Value, s.cfg.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				w.WriteHeader(common.StatusAuthTimeout)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), usernameKey, username)))
	}
}
