package server

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/session"
)

// ConfigRequest is the wire form of a drill configuration. Omitted fields
// keep the server's defaults for the drill.
type ConfigRequest struct {
	Kind       problemgen.Kind `json:"kind"`
	Terms      int             `json:"terms,omitempty"`
	MinDigits  int             `json:"min_digits,omitempty"`
	MaxDigits  int             `json:"max_digits,omitempty"`
	Operator   string          `json:"operator,omitempty"`
	IntervalMS int64           `json:"interval_ms,omitempty"`
	Length     int             `json:"length,omitempty"`
	Min        *int            `json:"min,omitempty"`
	Max        *int            `json:"max,omitempty"`
	Problems   *int            `json:"problems,omitempty"` // 0 is unlimited, or every country
	Options    int             `json:"options,omitempty"`
}

type StartRequest struct {
	Config ConfigRequest `json:"config"`
}

type DigitRequest struct {
	Digit string `json:"digit"`
}

type OptionRequest struct {
	Label string `json:"label"`
}

type SessionResponse struct {
	ID       string           `json:"id"`
	Snapshot session.Snapshot `json:"snapshot"`
}

type ErrorResponse struct {
	Error    string            `json:"error"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
}

// toConfig overlays the request on the drill defaults.
func (c ConfigRequest) toConfig(defaults func(problemgen.Kind) problemgen.Config) (problemgen.Config, error) {
	switch c.Kind {
	case problemgen.KindArithmetic, problemgen.KindSequence, problemgen.KindFlags:
	case "":
		return problemgen.Config{}, &problemgen.ConfigurationError{Field: "kind", Reason: "required"}
	default:
		return problemgen.Config{}, &problemgen.ConfigurationError{Field: "kind", Reason: "unknown drill " + string(c.Kind)}
	}

	cfg := defaults(c.Kind)
	cfg.Kind = c.Kind
	if c.Terms != 0 {
		cfg.Terms = c.Terms
	}
	if c.MinDigits != 0 {
		cfg.MinDigits = c.MinDigits
	}
	if c.MaxDigits != 0 {
		cfg.MaxDigits = c.MaxDigits
	}
	if c.Operator != "" {
		op, ok := problemgen.ParseOperator(c.Operator)
		if !ok {
			return problemgen.Config{}, &problemgen.ConfigurationError{Field: "operator", Reason: "unknown operator " + c.Operator}
		}
		cfg.Operator = op
	}
	if c.IntervalMS != 0 {
		cfg.RevealInterval = time.Duration(c.IntervalMS) * time.Millisecond
	}
	if c.Length != 0 {
		cfg.SequenceLength = c.Length
	}
	if c.Min != nil {
		cfg.SequenceMin = *c.Min
	}
	if c.Max != nil {
		cfg.SequenceMax = *c.Max
	}
	if c.Problems != nil {
		cfg.ProblemCount = *c.Problems
	}
	if c.Options != 0 {
		cfg.OptionCount = c.Options
	}
	return cfg, nil
}

func handleCreateSession(reg *Registry, defaults func(problemgen.Kind) problemgen.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cfg, err := req.Config.toConfig(defaults)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		id := reg.Create()
		e, err := reg.get(id)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		snap, err := e.dispatch(session.StartEvent{Config: cfg})
		if err != nil {
			reg.Delete(id)
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, SessionResponse{ID: id, Snapshot: snap})
	}
}

func handleGetSession(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, err := reg.get(id)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{ID: id, Snapshot: e.snapshot()})
	}
}

func handleDeleteSession(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := reg.Delete(chi.URLParam(r, "id")); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// eventDecoder turns a request into a machine event. Its errors are
// reported as bad requests.
type eventDecoder func(r *http.Request) (session.Event, error)

func handleEvent(reg *Registry, decode eventDecoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, err := reg.get(id)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		ev, err := decode(r)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}

		snap, err := e.dispatch(ev)
		if err != nil {
			writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error(), Snapshot: &snap})
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{ID: id, Snapshot: snap})
	}
}

var errBadBody = errors.New("invalid request body")

func constEvent(ev session.Event) eventDecoder {
	return func(*http.Request) (session.Event, error) { return ev, nil }
}

func decodeStart(defaults func(problemgen.Kind) problemgen.Config) eventDecoder {
	return func(r *http.Request) (session.Event, error) {
		var req StartRequest
		if err := readJSON(r, &req); err != nil {
			return nil, errBadBody
		}
		cfg, err := req.Config.toConfig(defaults)
		if err != nil {
			return nil, err
		}
		return session.StartEvent{Config: cfg}, nil
	}
}

func decodeDigit(r *http.Request) (session.Event, error) {
	var req DigitRequest
	if err := readJSON(r, &req); err != nil {
		return nil, errBadBody
	}
	if utf8.RuneCountInString(req.Digit) != 1 {
		return nil, errors.New("digit must be a single character")
	}
	d, _ := utf8.DecodeRuneInString(req.Digit)
	return session.DigitEvent{Digit: d}, nil
}

func decodeOption(r *http.Request) (session.Event, error) {
	var req OptionRequest
	if err := readJSON(r, &req); err != nil {
		return nil, errBadBody
	}
	if req.Label == "" {
		return nil, errors.New("label is required")
	}
	return session.OptionEvent{Label: req.Label}, nil
}
