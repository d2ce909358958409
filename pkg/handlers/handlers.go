package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/spencer-p/sunrange/pkg/form"
	"github.com/spencer-p/sunrange/pkg/history"
)

//go:embed static
var content embed.FS

// Form is the part of *form.Form the shell drives.
type Form interface {
	State() form.State
	SetQuery(text string)
	SelectID(id int) (form.Candidate, bool)
	SetStartDate(value string)
	SetEndDate(value string)
	Submit(ctx context.Context) (form.Outcome, error)
}

// Holder keeps the records of the last completed submission for reuse
// outside the form. Its Set method is meant as the form's OnSubmit.
type Holder struct {
	mu      sync.Mutex
	records history.Records
}

func (h *Holder) Set(records history.Records) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = records
}

func (h *Holder) Get() history.Records {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append(history.Records{}, h.records...)
}

type shell struct {
	form   Form
	holder *Holder
	log    zerolog.Logger
}

// Register adds the shell's page and API under r. prefix is the path r is
// mounted at, used to build links in the page.
func Register(r *mux.Router, prefix string, f Form, h *Holder, logger zerolog.Logger) {
	s := &shell{form: f, holder: h, log: logger}

	r.Handle("/", makeIndexHandler(prefix, s)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/state", s.serveState).Methods(http.MethodGet)
	api.HandleFunc("/last", s.serveLast).Methods(http.MethodGet)
	api.HandleFunc("/query", s.handleQuery).Methods(http.MethodPost)
	api.HandleFunc("/select", s.handleSelect).Methods(http.MethodPost)
	api.HandleFunc("/start_date", s.handleDate(f.SetStartDate)).Methods(http.MethodPost)
	api.HandleFunc("/end_date", s.handleDate(f.SetEndDate)).Methods(http.MethodPost)
	api.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
}

// TemplateInput is what the index template renders.
type TemplateInput struct {
	State form.State
	API   string
}

func makeIndexHandler(prefix string, s *shell) http.Handler {
	indexTemplate := template.Must(template.ParseFS(content, "static/index.template.html"))
	api := path.Join("/", prefix, "api/v1")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		tinput := TemplateInput{
			State: s.form.State(),
			API:   api,
		}
		if err := indexTemplate.Execute(w, tinput); err != nil {
			s.log.Error().Err(err).Msg("Failed to execute template")
		}
	})
}

func (s *shell) serveState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.form.State())
}

func (s *shell) serveLast(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.holder.Get())
}

func (s *shell) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	s.form.SetQuery(body.Text)
	s.writeJSON(w, http.StatusOK, s.form.State())
}

func (s *shell) handleSelect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	if _, ok := s.form.SelectID(body.ID); !ok {
		s.writeMessage(w, http.StatusNotFound, "no such location")
		return
	}
	s.writeJSON(w, http.StatusOK, s.form.State())
}

func (s *shell) handleDate(set func(string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Value string `json:"value"`
		}
		if !s.decode(w, r, &body) {
			return
		}
		set(body.Value)
		s.writeJSON(w, http.StatusOK, s.form.State())
	}
}

// SubmitResponse is the reply to a submission.
type SubmitResponse struct {
	OK      bool       `json:"ok"`
	Failure string     `json:"failure,omitempty"`
	State   form.State `json:"state"`
}

func (s *shell) handleSubmit(w http.ResponseWriter, r *http.Request) {
	out, err := s.form.Submit(r.Context())
	if errors.Is(err, form.ErrIncomplete) {
		s.writeJSON(w, http.StatusConflict, SubmitResponse{
			Failure: err.Error(),
			State:   s.form.State(),
		})
		return
	} else if err != nil {
		s.writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, SubmitResponse{
		OK:      out.OK(),
		Failure: out.Failure,
		State:   s.form.State(),
	})
}

func (s *shell) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "request body must be JSON: "+err.Error())
		return false
	}
	return true
}

func (s *shell) writeMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"message": msg})
}

func (s *shell) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON result")
	}
}
