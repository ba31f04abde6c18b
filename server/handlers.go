package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ZaguanLabs/furigo"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": furigo.FullVersion(),
	})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Menu())
}

// handleClick accepts a menu activation and answers with the loading
// placeholder. The translation finishes in the background and is pushed.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var click furigo.MenuClick
	if err := decodeValidated(menuClickSchema, body, &click); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := s.controller.Begin(r.Context(), click)
	switch {
	case errors.Is(err, furigo.ErrUnknownMenuItem), errors.Is(err, furigo.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A started remote call is never cancelled.
	ctx := context.WithoutCancel(r.Context())
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.controller.Finish(ctx, req)
	}()

	writeJSON(w, http.StatusAccepted, furigo.LoadingResult(req.Direction))
}

func (s *Server) handleTranslation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Latest())
}

func (s *Server) loadPreference(r *http.Request) furigo.UserPreference {
	if s.prefs == nil {
		return furigo.DefaultPreference()
	}
	pref, err := s.prefs.LoadPreference(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("preference unavailable, using default")
		return furigo.DefaultPreference()
	}
	return pref
}

func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.loadPreference(r))
}

func (s *Server) handlePutPreference(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var pref furigo.UserPreference
	if err := decodeValidated(preferenceSchema, body, &pref); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.prefs != nil {
		if err := s.prefs.SavePreference(r.Context(), pref); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, pref)
}

func (s *Server) openSurface(r *http.Request) {
	if err := s.surface.Open(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("popup pull failed")
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.openSurface(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderPage(w, s.surface.View()); err != nil {
		s.logger.Error().Err(err).Msg("render popup page")
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.openSurface(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, s.surface.View()); err != nil {
		s.logger.Error().Err(err).Msg("render popup view")
	}
}

func (s *Server) handleLearningMode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	enabled, err := strconv.ParseBool(r.FormValue("enabled"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "enabled must be true or false")
		return
	}

	s.openSurface(r)
	if err := s.surface.SetLearningMode(r.Context(), enabled); err != nil {
		s.logger.Error().Err(err).Msg("preference not saved")
		writeError(w, http.StatusInternalServerError, "preference not saved")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, s.surface.View()); err != nil {
		s.logger.Error().Err(err).Msg("render popup view")
	}
}
