package web

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/clustering"
	"github.com/justestif/go-moodmuse/internal/intent"
	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/recommend"
	"github.com/justestif/go-moodmuse/internal/session"
)

// DefaultLanguage is used when neither the request nor the session names one.
const DefaultLanguage = "english"

// Error messages shown to listeners.
const (
	msgSessionRequired  = "Session ID is required"
	msgSessionNotFound  = "Session not found or expired"
	msgInputRequired    = "Please share how you're feeling (text or emojis)"
	msgMoodRequired     = "Mood analysis not completed. Please analyze mood first."
	msgLanguageRequired = "Language is required"
	msgBadBody          = "Invalid request body"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	recommender *recommend.Service
	sessions    session.Store
	log         *logger.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(recommender *recommend.Service, sessions session.Store, log *logger.Logger) *Handlers {
	return &Handlers{
		recommender: recommender,
		sessions:    sessions,
		log:         log,
	}
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionView struct {
	SessionID   string       `json:"sessionId"`
	Step        session.Step `json:"step"`
	HasMood     *bool        `json:"hasMood,omitempty"`
	HasLanguage *bool        `json:"hasLanguage,omitempty"`
	HasSongs    *bool        `json:"hasSongs,omitempty"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// CreateSession handles POST /api/session.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Create(r.Context())
	if err != nil {
		h.log.Error("creating session", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, sessionView{
		SessionID: s.ID,
		Step:      s.Step,
		ExpiresAt: s.ExpiresAt.UTC(),
	})
}

// GetSession handles GET /api/session?id=.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSession(w, r, r.URL.Query().Get("id"), "Failed to retrieve session")
	if !ok {
		return
	}
	hasMood, hasLanguage, hasSongs := s.Mood != nil, s.Partition != "", len(s.SongIDs) > 0
	writeJSON(w, http.StatusOK, sessionView{
		SessionID:   s.ID,
		Step:        s.Step,
		HasMood:     &hasMood,
		HasLanguage: &hasLanguage,
		HasSongs:    &hasSongs,
		ExpiresAt:   s.ExpiresAt.UTC(),
	})
}

type analyzeRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
	Emojis    string `json:"emojis"`
}

type analyzeResponse struct {
	PrimaryMood string        `json:"primaryMood"`
	Dominant    string        `json:"dominant"`
	Confidence  float64       `json:"confidence"`
	Vector      affect.Vector `json:"vector"`
	NextStep    string        `json:"nextStep"`
}

// AnalyzeMood handles POST /api/mood/analyze.
func (h *Handlers) AnalyzeMood(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	s, ok := h.loadSession(w, r, req.SessionID, "Failed to analyze mood. Please try again.")
	if !ok {
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.Emojis) == "" {
		writeError(w, http.StatusBadRequest, msgInputRequired)
		return
	}

	res := h.recommender.Analyze(req.Text, req.Emojis)
	s.SetMood(res)
	if !h.saveSession(w, r, s, "Failed to analyze mood. Please try again.") {
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		PrimaryMood: res.Label,
		Dominant:    res.Dominant.String(),
		Confidence:  res.Confidence,
		Vector:      res.Vector,
		NextStep:    "/language",
	})
}

type songsRequest struct {
	SessionID  string        `json:"sessionId"`
	Language   string        `json:"language"`
	Limit      int           `json:"limit"`
	Intent     intent.Intent `json:"intent"`
	ExcludeIDs []string      `json:"excludeIds"`
	Mode       string        `json:"mode"`
}

type songView struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

type songsResponse struct {
	Headline    string        `json:"headline"`
	PrimaryMood string        `json:"primaryMood"`
	Intent      intent.Intent `json:"intent"`
	Songs       []songView    `json:"songs"`
}

// Songs handles POST /api/songs.
func (h *Handlers) Songs(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to fetch songs. Please try again."

	var req songsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	s, ok := h.loadSession(w, r, req.SessionID, failMsg)
	if !ok {
		return
	}
	if s.Mood == nil {
		writeError(w, http.StatusBadRequest, msgMoodRequired)
		return
	}

	language := firstNonEmpty(req.Language, s.Partition, DefaultLanguage)
	if req.Language != "" {
		s.Partition = req.Language
	}

	resp, err := h.recommender.Recommend(r.Context(), recommend.Request{
		Mood:       *s.Mood,
		Intent:     req.Intent,
		Partitions: recommend.ParsePartitions(language),
		Limit:      req.Limit,
		ExcludeIDs: req.ExcludeIDs,
		Mode:       recommend.ParseMode(req.Mode),
	})
	if err != nil {
		h.log.Error("recommending songs", "error", err, "session_id", s.ID)
		writeError(w, http.StatusInternalServerError, failMsg)
		return
	}

	out := songsResponse{
		Headline:    resp.Label,
		PrimaryMood: s.Mood.Label,
		Intent:      req.Intent,
		Songs:       make([]songView, len(resp.Songs)),
	}
	ids := make([]string, len(resp.Songs))
	for i, c := range resp.Songs {
		out.Songs[i] = songView{
			ID:       c.Item.ID,
			Title:    c.Item.Title,
			Artist:   c.Item.Attribution,
			Language: c.Item.Partition,
			Score:    roundScore(c.Score),
		}
		ids[i] = c.Item.ID
	}

	s.AddSongs(ids...)
	if !h.saveSession(w, r, s, failMsg) {
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type languageRequest struct {
	SessionID string `json:"sessionId"`
	Language  string `json:"language"`
}

// SetLanguage handles PATCH /api/songs.
func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to update language"

	var req languageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, msgSessionRequired)
		return
	}
	if strings.TrimSpace(req.Language) == "" {
		writeError(w, http.StatusBadRequest, msgLanguageRequired)
		return
	}
	s, ok := h.loadSession(w, r, req.SessionID, failMsg)
	if !ok {
		return
	}

	s.SetPartition(req.Language)
	if !h.saveSession(w, r, s, failMsg) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"language": req.Language,
		"nextStep": "/processing",
	})
}

// Intents handles GET /api/intents.
func (h *Handlers) Intents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, intent.Options())
}

// Profile handles GET /api/catalog/profile?groups=&min=.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	cfg := clustering.DefaultConfig()
	q := r.URL.Query()
	if n, err := strconv.Atoi(q.Get("groups")); err == nil && n > 0 {
		cfg.NumGroups = n
	}
	if n, err := strconv.Atoi(q.Get("min")); err == nil && n > 0 {
		cfg.MinGroupSize = n
	}

	res, err := h.recommender.Profile(r.Context(), cfg)
	if err != nil {
		h.log.Error("profiling catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to profile catalog")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// loadSession fetches a session, writing the error response itself when
// it cannot.
func (h *Handlers) loadSession(w http.ResponseWriter, r *http.Request, id, failMsg string) (*session.Session, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, msgSessionRequired)
		return nil, false
	}
	s, err := h.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgSessionNotFound)
		return nil, false
	}
	if err != nil {
		h.log.Error("loading session", "error", err, "session_id", id)
		writeError(w, http.StatusInternalServerError, failMsg)
		return nil, false
	}
	return s, true
}

func (h *Handlers) saveSession(w http.ResponseWriter, r *http.Request, s *session.Session, failMsg string) bool {
	err := h.sessions.Update(r.Context(), s)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgSessionNotFound)
		return false
	}
	if err != nil {
		h.log.Error("saving session", "error", err, "session_id", s.ID)
		writeError(w, http.StatusInternalServerError, failMsg)
		return false
	}
	return true
}

// roundScore caps a ranking score at 1 and keeps two decimals. Ranking
// bonuses can push the raw score past 1.
func roundScore(score float64) float64 {
	return math.Round(math.Min(score, 1)*100) / 100
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
