package debugserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/archquery/archquery/internal/logging"
	"github.com/archquery/archquery/internal/store"
	"github.com/archquery/archquery/internal/web/query"
)

type parseRequest struct {
	Input string `json:"input"`
}

// handleParse checks the configured Cache before running the compiler
// façade, and returns its Result as JSON, or a 400 with the façade's own
// human-readable message on failure. A nil Cache (cache disabled in
// config) makes this call straight through to the compiler on every
// request.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	requestID := requestIDFromContext(r.Context())

	if s.cache != nil {
		cached, hit, err := s.cache.Get(r.Context(), req.Input)
		if err != nil {
			s.logger.Warn("cache get failed",
				zap.String("request_id", requestID), zap.Error(err))
		} else if hit {
			s.logger.Info("parse cache hit",
				zap.String("request_id", requestID),
				zap.Int(logging.FieldInputLength, len(req.Input)))
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := s.compiler.Parse(req.Input)
	if err != nil {
		s.logger.Info("parse failed",
			zap.String("request_id", requestID),
			zap.Int(logging.FieldInputLength, len(req.Input)),
			zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(r.Context(), req.Input, result); err != nil {
			s.logger.Warn("cache put failed",
				zap.String("request_id", requestID), zap.Error(err))
		}
	}

	s.logger.Info("parse succeeded",
		zap.String("request_id", requestID),
		zap.Int(logging.FieldInputLength, len(req.Input)))
	writeJSON(w, http.StatusOK, result)
}

// handleListQueries returns every stored query, honoring an optional
// ?sort= parameter validated against internal/web/query.ValidSortFields.
func (s *Server) handleListQueries(w http.ResponseWriter, r *http.Request) {
	sorts := query.ParseSort(r)
	if err := query.ValidateSortFields(sorts, query.ValidSortFields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.store.List(r.Context(), sorts...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

type saveQueryRequest struct {
	Name      string `json:"name"`
	Input     string `json:"input"`
	CreatedBy string `json:"created_by"`
}

// handleSaveQuery validates the input through the compiler façade before
// persisting it (a stored query that can never compile is of no use to
// the scheduled job that will eventually run it), then saves the raw,
// uncompiled Input string. Compiling stays the job's responsibility; see
// the internal/store.Store doc comment.
func (s *Server) handleSaveQuery(w http.ResponseWriter, r *http.Request) {
	var req saveQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := s.compiler.Parse(req.Input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := store.StoredQuery{
		Name:      req.Name,
		Input:     req.Input,
		CreatedBy: req.CreatedBy,
		CreatedAt: time.Now(),
	}
	if err := s.store.Save(r.Context(), q); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	q, err := s.store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
