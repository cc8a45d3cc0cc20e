package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/league-brackets/brackets"
	"github.com/Dosada05/league-brackets/middleware"
	"github.com/Dosada05/league-brackets/services"
	"github.com/go-chi/chi/v5"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// Preview godoc
// @Summary Preview a bracket
// @Tags brackets
// @Description Builds the full match list for the seeded teams without storing anything.
// @Accept json
// @Produce json
// @Param body body services.BracketInput true "Teams in seed order, season, days and bracket type"
// @Success 200 {object} map[string]interface{} "success, matches, warnings, stats"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 422 {object} map[string]interface{} "error (joined validation errors), warnings"
// @Router /brackets/preview [post]
func (h *BracketHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input services.BracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.bracketService.Preview(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	env := jsonResponse{
		"success":  true,
		"matches":  res.Matches,
		"warnings": res.Warnings,
		"stats":    res.Stats,
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Generate godoc
// @Summary Generate and store a bracket
// @Tags brackets
// @Description Stores every match of the bracket one by one. Supplied matches are stored verbatim.
// @Description 200 when all matches were created, 207 when some failed, 500 when none were created.
// @Accept json
// @Produce json
// @Param body body services.BracketInput true "Same as preview, optionally with matches"
// @Success 200 {object} services.GenerateResult "All matches created"
// @Success 207 {object} services.GenerateResult "Some matches failed"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 403 {object} map[string]string "Role not allowed"
// @Failure 409 {object} map[string]string "Bracket already generated"
// @Failure 422 {object} map[string]interface{} "error (joined validation errors), warnings"
// @Failure 500 {object} services.GenerateResult "No match created"
// @Security BearerAuth
// @Router /brackets/generate [post]
func (h *BracketHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var actorID *int
	if id, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		actorID = &id
	}

	var input services.BracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.bracketService.Generate(r.Context(), input, actorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, outcomeStatus(res.Outcome), res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func outcomeStatus(outcome brackets.Outcome) int {
	switch outcome {
	case brackets.OutcomeFull:
		return http.StatusOK
	case brackets.OutcomePartial:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}

// Stats godoc
// @Summary Bracket size figures
// @Tags brackets
// @Produce json
// @Param teams query int true "Number of teams"
// @Param type query string true "single or double"
// @Success 200 {object} brackets.BracketStats
// @Failure 400 {object} map[string]string "Missing or malformed query"
// @Failure 422 {object} map[string]string "Unsupported values"
// @Router /brackets/stats [get]
func (h *BracketHandler) Stats(w http.ResponseWriter, r *http.Request) {
	teamsStr := r.URL.Query().Get("teams")
	if teamsStr == "" {
		badRequestResponse(w, r, errors.New("query parameter 'teams' is required"))
		return
	}
	teams, err := strconv.Atoi(teamsStr)
	if err != nil {
		badRequestResponse(w, r, errors.New("query parameter 'teams' must be an integer"))
		return
	}

	stats, err := h.bracketService.Stats(teams, r.URL.Query().Get("type"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Stored bracket of a season
// @Tags brackets
// @Produce json
// @Param seasonID path string true "Season ID"
// @Param leagueId query string false "League ID; omit for the season-wide bracket"
// @Success 200 {object} services.BracketView
// @Failure 404 {object} map[string]string "No bracket generated"
// @Router /seasons/{seasonID}/bracket [get]
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	seasonID := strings.TrimSpace(chi.URLParam(r, "seasonID"))
	if seasonID == "" {
		badRequestResponse(w, r, errors.New("missing seasonID"))
		return
	}

	var leagueID *string
	if v := r.URL.Query().Get("leagueId"); v != "" {
		leagueID = &v
	}

	view, err := h.bracketService.GetBracket(r.Context(), seasonID, leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
