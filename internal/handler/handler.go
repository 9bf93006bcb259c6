package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/calc-service/internal/calc/scientific"
	"github.com/Dan9191/calc-service/internal/models"
	"github.com/Dan9191/calc-service/internal/service"
	"github.com/Dan9191/calc-service/internal/session"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc    *service.Service
	signer *session.Signer
	log    *logrus.Logger
}

func NewHandler(svc *service.Service, signer *session.Signer, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, signer: signer, log: log}
}

// Register mounts every endpoint on r. The router only runs its own
// middlewares on matched routes, so mw is applied to the 404 and 405
// handlers explicitly.
func (h *Handler) Register(r *mux.Router, mw ...mux.MiddlewareFunc) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/modes", h.Modes).Methods(http.MethodGet)
	r.HandleFunc("/calculate/{mode}", h.Calculate).Methods(http.MethodPost)
	r.HandleFunc("/scientific/press", h.Press).Methods(http.MethodPost)
	r.HandleFunc("/scientific/ws", h.Session).Methods(http.MethodGet)
	r.HandleFunc("/mortgage", h.Mortgage).Methods(http.MethodPost)
	r.HandleFunc("/mortgage/schedule", h.MortgageSchedule).Methods(http.MethodPost)
	r.HandleFunc("/age", h.Age).Methods(http.MethodPost)
	r.HandleFunc("/temperature", h.Temperature).Methods(http.MethodPost)
	r.HandleFunc("/currency/rates", h.Rates).Methods(http.MethodGet)
	r.HandleFunc("/currency", h.Currency).Methods(http.MethodPost)
	r.HandleFunc("/units", h.UnitCategories).Methods(http.MethodGet)
	r.HandleFunc("/units", h.Units).Methods(http.MethodPost)
	r.NotFoundHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	}), mw)
	r.MethodNotAllowedHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed"})
	}), mw)
}

// chain wraps next so that mw[0] runs first
func chain(next http.Handler, mw []mux.MiddlewareFunc) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		next = mw[i](next)
	}
	return next
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Modes lists the calculators
func (h *Handler) Modes(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.svc.Modes())
}

// Calculate dispatches a form to the engine named in the path
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	mode, err := models.ParseMode(mux.Vars(r)["mode"])
	if err != nil {
		h.respond(w, r, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}

	switch mode {
	case models.ModeScientific:
		h.Press(w, r)
	case models.ModeMortgage:
		h.Mortgage(w, r)
	case models.ModeAge:
		h.Age(w, r)
	case models.ModeTemperature:
		h.Temperature(w, r)
	case models.ModeCurrency:
		h.Currency(w, r)
	case models.ModeUnits:
		h.Units(w, r)
	default:
		h.respond(w, r, http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("unknown mode: %q", mode)})
	}
}

// Press applies keys to the calculator state carried in the request token
// and returns the new state with a fresh token
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	var req models.ScientificRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	st, err := h.signer.Restore(req.Token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	keys := append(req.Keys, scientific.Tokenize(req.Input)...)
	if err := h.svc.Press(st, keys); err != nil {
		h.fail(w, r, err)
		return
	}

	view := service.View(st)
	if view.Token, err = h.signer.Issue(st); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// Mortgage computes loan payments
func (h *Handler) Mortgage(w http.ResponseWriter, r *http.Request) {
	var req models.MortgageRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Mortgage(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// MortgageSchedule computes the loan summary and its installments
func (h *Handler) MortgageSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.MortgageRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.MortgageSchedule(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// Age computes the time since a birth date
func (h *Handler) Age(w http.ResponseWriter, r *http.Request) {
	var req models.AgeRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Age(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// Temperature converts a reading to every scale
func (h *Handler) Temperature(w http.ResponseWriter, r *http.Request) {
	var req models.TemperatureRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Temperature(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// Rates lists the currency table
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.svc.Rates())
}

// Currency converts between currencies
func (h *Handler) Currency(w http.ResponseWriter, r *http.Request) {
	var req models.CurrencyRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Currency(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// UnitCategories lists the unit tables
func (h *Handler) UnitCategories(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.svc.UnitCategories())
}

// Units converts within a unit category
func (h *Handler) Units(w http.ResponseWriter, r *http.Request) {
	var req models.UnitsRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Units(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}
