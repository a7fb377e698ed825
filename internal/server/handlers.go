package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/internal/storage"
	"github.com/metsehaf/fidel/internal/translit"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Bool("fuzzy", query.Fuzzy))
	s.respondJSON(w, http.StatusOK, s.engine.Query(r.Context(), &query))
}

func (s *Server) handleSearchGet(w http.ResponseWriter, r *http.Request) {
	query := models.SearchQuery{Query: r.URL.Query().Get("q")}
	if v := r.URL.Query().Get("fuzzy"); v != "" {
		fuzzy, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid fuzzy parameter")
			return
		}
		query.Fuzzy = fuzzy
	}
	s.respondJSON(w, http.StatusOK, s.engine.Query(r.Context(), &query))
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	idx, _ := s.session.Index()
	if idx == nil {
		s.respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}
	entry := idx.Entry(word)
	if entry == nil {
		s.respondError(w, http.StatusNotFound, "word not found")
		return
	}
	chain := translit.DefaultChain()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"word":            word,
		"entry":           entry,
		"transliteration": chain.Transliteration(word, entry),
		"verse_refs":      idx.Locations(word),
	})
}

func (s *Server) handleTransliterate(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	resp := map[string]interface{}{
		"text":            text,
		"transliteration": translit.Word(text),
		"ethiopic":        translit.ContainsEthiopic(text),
	}
	if translit.ContainsEthiopic(text) {
		value := translit.WordValue(text)
		resp["gematria"] = value
		resp["digital_root"] = translit.DigitalRoot(value)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"session":    s.session.ID(),
		"state":      string(s.session.State()),
		"generation": s.session.Generation(),
	}
	if idx, _ := s.session.Index(); idx != nil {
		stats := idx.Stats()
		resp["lexicon_words"] = len(idx.Words())
		resp["verses"] = stats.VerseCount
		resp["chapter_count"] = stats.ChapterCount
	}
	if s.config.Data.CachePath != "" {
		if diskBytes, err := storage.DiskUsageBytes(s.config.Data.CachePath); err == nil {
			resp["cache_disk_bytes"] = diskBytes
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
