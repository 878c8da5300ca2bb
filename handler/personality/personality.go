package personality

import (
	"encoding/json"
	"net/http"

	"github.com/mager/moodscale/moodscale"
	core "github.com/mager/moodscale/personality"
	"go.uber.org/zap"
)

const maxGenres = 500

// PersonalityHandler scores a genre list without touching Spotify.
type PersonalityHandler struct {
	log *zap.SugaredLogger
}

func (*PersonalityHandler) Pattern() string {
	return "/personality"
}

func NewPersonalityHandler(log *zap.SugaredLogger) *PersonalityHandler {
	return &PersonalityHandler{log: log}
}

type Request struct {
	Genres []string `json:"genres"`
}

// Score genres
// @Summary Score genres
// @Description Returns the MBTI type and Big Five scores for a genre list
// @Accept json
// @Produce json
// @Param request body Request true "Genres, most listened first"
// @Success 200 {object} moodscale.Profile
// @Router /personality [post]
func (h *PersonalityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if len(req.Genres) > maxGenres {
		http.Error(w, `{"error":"too many genres"}`, http.StatusBadRequest)
		return
	}

	resp := moodscale.FromPersonality(core.Analyze(req.Genres))
	h.log.Infow("scored genres", "genres", len(req.Genres), "mbti", resp.MBTI.String())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
