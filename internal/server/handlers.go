package server

import (
	"net/http"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/services/holdings"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleHoldings runs a fresh aggregation pass and returns the snapshot.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	snapshot, err := s.app.HoldingsService.GetHoldings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Holdings aggregation failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch holdings: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

type queryRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req queryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		WriteError(w, http.StatusBadRequest, "Query text is required")
		return
	}

	result, err := s.app.QueryService.ProcessQuery(r.Context(), req.Text)
	if err != nil {
		s.logger.Error().Err(err).Msg("Query processing failed")
		WriteError(w, http.StatusInternalServerError, "Failed to process query: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleChart serves the allocation donut as PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.HoldingsService.GetHoldings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Holdings aggregation failed for chart")
		WriteError(w, http.StatusBadGateway, "Failed to fetch holdings: "+err.Error())
		return
	}

	png, err := holdings.RenderAllocationChart(snapshot)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to render chart: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type watchlistAddRequest struct {
	Symbol string `json:"symbol"`
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		quotes, err := s.app.WatchlistService.GetWatchlist(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Watchlist read failed")
			WriteError(w, http.StatusInternalServerError, "Failed to load watchlist: "+err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"symbols": quotes})

	case http.MethodPost:
		var req watchlistAddRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		if err := s.app.WatchlistService.AddSymbol(r.Context(), req.Symbol); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, map[string]string{"status": "added"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleWatchlistSymbol handles DELETE /api/watchlist/{symbol}.
func (s *Server) handleWatchlistSymbol(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	symbol := PathParam(r.URL.Path, "/api/watchlist/")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	if err := s.app.WatchlistService.RemoveSymbol(r.Context(), symbol); err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
