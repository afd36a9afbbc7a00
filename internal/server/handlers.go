package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/preflop"
	"github.com/lox/pokerdrill/internal/scenario"
)

// SpotResponse is the body of GET /api/preflop/spot.
type SpotResponse struct {
	Seed           int64                  `json:"seed"`
	Spot           *preflop.Spot          `json:"spot"`
	Recommendation preflop.Recommendation `json:"recommendation"`
	Choices        []scenario.ActionType  `json:"choices"`
	Explain        []string               `json:"explain"`
}

var actionTypes = []scenario.ActionType{
	scenario.Fold, scenario.Check, scenario.Call, scenario.Bet, scenario.Raise, scenario.AllIn,
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	metas, err := s.scenarios.List(r.Context())
	if err != nil {
		s.internalError(w, "list scenarios", err)
		return
	}
	writeJSON(w, http.StatusOK, metas)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrScenarioNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Scenario not found"})
		return
	}
	if err != nil {
		s.internalError(w, "load scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleScenarioStats(w http.ResponseWriter, r *http.Request) {
	list, err := s.attempts.List(r.Context())
	if err != nil {
		s.internalError(w, "list attempts", err)
		return
	}
	writeJSON(w, http.StatusOK, attempts.Stats(list, chi.URLParam(r, "id")))
}

func (s *Server) handlePreflopSpot(w http.ResponseWriter, r *http.Request) {
	seed := s.clock.Now().UnixNano()
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "seed must be an integer"})
			return
		}
		seed = v
	}

	spot, err := preflop.NewSeededGenerator(seed).Generate()
	if err != nil {
		s.internalError(w, "generate spot", err)
		return
	}
	rec, err := preflop.Recommend(spot)
	if err != nil {
		s.internalError(w, "recommend", err)
		return
	}
	choices, err := preflop.DrillChoices(spot)
	if err != nil {
		s.internalError(w, "drill choices", err)
		return
	}
	writeJSON(w, http.StatusOK, SpotResponse{
		Seed:           seed,
		Spot:           spot,
		Recommendation: rec,
		Choices:        choices,
		Explain:        preflop.Explain(rec),
	})
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	list, err := s.attempts.List(r.Context())
	if err != nil {
		s.internalError(w, "list attempts", err)
		return
	}
	if id := r.URL.Query().Get("scenarioId"); id != "" {
		var filtered []scenario.AttemptResult
		for _, a := range list {
			if a.ScenarioID == id {
				filtered = append(filtered, a)
			}
		}
		list = filtered
	}
	if list == nil {
		list = []scenario.AttemptResult{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAppendAttempt(w http.ResponseWriter, r *http.Request) {
	var a scenario.AttemptResult
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid attempt: " + err.Error()})
		return
	}
	if msg := checkAttempt(a); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}
	if a.Timestamp == 0 {
		a.Timestamp = s.clock.Now().UnixMilli()
	}
	if err := s.attempts.Append(r.Context(), a); err != nil {
		s.internalError(w, "append attempt", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleClearAttempts(w http.ResponseWriter, r *http.Request) {
	if err := s.attempts.Clear(r.Context()); err != nil {
		s.internalError(w, "clear attempts", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func checkAttempt(a scenario.AttemptResult) string {
	switch {
	case strings.TrimSpace(a.ScenarioID) == "":
		return "scenarioId is required"
	case strings.TrimSpace(a.NodeID) == "":
		return "nodeId is required"
	case a.ChosenAction == "":
		return "chosenAction is required"
	case !slices.Contains(actionTypes, a.ChosenAction):
		return "unknown chosenAction " + string(a.ChosenAction)
	}
	return ""
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error().Err(err).Str("op", op).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
