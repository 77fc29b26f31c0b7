package server

import (
	"net/http"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"messagely/internal/auth"
	"messagely/internal/config"
	"messagely/internal/handlers"
	authh "messagely/internal/handlers/auth"
	"messagely/internal/handlers/message"
	"messagely/internal/handlers/user"
	"messagely/internal/middleware"
	"messagely/internal/sms"
	"messagely/internal/store"
	"messagely/internal/ws"
)

type Server struct {
	Addr     string
	Cfg      *config.Config
	Users    store.Users
	Messages store.Messages
	Issuer   *auth.TokenIssuer
	Gateway  sms.Gateway
	Hub      *ws.Hub
}

func NewServer(addr string, cfg *config.Config, users store.Users, messages store.Messages, issuer *auth.TokenIssuer, gateway sms.Gateway, hub *ws.Hub) *Server {
	return &Server{
		Addr:     addr,
		Cfg:      cfg,
		Users:    users,
		Messages: messages,
		Issuer:   issuer,
		Gateway:  gateway,
		Hub:      hub,
	}
}

func handlerFunc(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

// Router builds the full route tree. Split out from Run so tests can
// drive it with httptest.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.Logger("router", logrus.StandardLogger()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", handlers.HealthCheck)

	// public
	r.Post("/register", handlerFunc(&authh.RegisterHandler{
		Users:        s.Users,
		Issuer:       s.Issuer,
		BcryptCost:   s.Cfg.BcryptCost,
		PhoneRegions: s.Cfg.PhoneRegions,
	}))
	r.Post("/login", handlerFunc(&authh.LoginHandler{Users: s.Users, Issuer: s.Issuer}))

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Auth(s.Issuer))
		r.Get("/", handlerFunc(&user.ListHandler{Users: s.Users}))

		r.Route("/{username}", func(r chi.Router) {
			r.Use(middleware.RequireSelf)
			r.Get("/", handlerFunc(&user.GetHandler{Users: s.Users}))
			r.Get("/to", handlerFunc(&user.MessagesHandler{Users: s.Users, Inbound: true}))
			r.Get("/from", handlerFunc(&user.MessagesHandler{Users: s.Users, Inbound: false}))
			r.Post("/edit", handlerFunc(&user.EditHandler{Users: s.Users, PhoneRegions: s.Cfg.PhoneRegions}))
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(middleware.Auth(s.Issuer))
		r.Post("/", handlerFunc(&message.CreateHandler{Messages: s.Messages, Hub: s.Hub}))
		r.Get("/{id}", handlerFunc(&message.GetHandler{Messages: s.Messages}))
		r.Post("/{id}/read", handlerFunc(&message.ReadHandler{Messages: s.Messages}))
		r.Post("/{id}/sms", handlerFunc(&message.SMSHandler{Messages: s.Messages, Gateway: s.Gateway}))
	})

	// live delivery stream; token arrives as a query parameter
	r.Get("/ws", handlers.Stream(s.Issuer, s.Hub))

	return r
}

func (s *Server) Run() error {
	logrus.WithField("addr", s.Addr).Info("server listening")
	return http.ListenAndServe(s.Addr, s.Router())
}
