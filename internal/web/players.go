package web

import (
	"encoding/json"
	"net/http"
	"roster/internal/back"

	"github.com/go-chi/chi"
)

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePage(q)
	if err != nil {
		s.error(w, r, err)
		return
	}

	filter, err := parseFilter(q)
	if err != nil {
		s.error(w, r, err)
		return
	}

	players, err := s.back.ListPlayers(r.Context(), filter, page)
	if err != nil {
		s.error(w, r, err)
		return
	}

	s.response(w, http.StatusOK, players)
}

func (s *Server) countPlayers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		s.error(w, r, err)
		return
	}

	n, err := s.back.CountPlayers(r.Context(), filter)
	if err != nil {
		s.error(w, r, err)
		return
	}

	s.response(w, http.StatusOK, n)
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.back.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, r, err)
		return
	}

	s.response(w, http.StatusOK, player)
}

func (s *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		s.error(w, r, err)
		return
	}

	player, err := s.back.CreatePlayer(r.Context(), draft)
	if err != nil {
		s.error(w, r, err)
		return
	}

	s.response(w, http.StatusOK, player)
}

func (s *Server) updatePlayer(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDraft(r)
	if err != nil {
		s.error(w, r, err)
		return
	}

	player, err := s.back.UpdatePlayer(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.error(w, r, err)
		return
	}

	s.response(w, http.StatusOK, player)
}

func (s *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.back.DeletePlayer(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// decodeDraft rejects the player outright on an unreadable payload, be it
// malformed JSON or an unknown race or profession.
func decodeDraft(r *http.Request) (back.PlayerDraft, error) {
	var draft back.PlayerDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		return back.PlayerDraft{}, back.ErrRecordRejected
	}

	return draft, nil
}
