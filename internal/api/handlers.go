package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/store"
	"github.com/gorilla/mux"
)

const defaultAttemptLimit = 20

type handler struct {
	service *exam.Service
	events  store.EventRepo
	log     *slog.Logger
}

// QuizSummary is one catalog entry.
type QuizSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Questions int    `json:"questions"`
}

// PublicQuestion is a question with its answer removed.
type PublicQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Topic   string   `json:"topic"`
}

// PublicQuiz is a quiz as served to test takers.
type PublicQuiz struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Subject   string           `json:"subject,omitempty"`
	Duration  string           `json:"duration,omitempty"`
	Questions []PublicQuestion `json:"questions"`
}

// EvaluateRequest is the body of an evaluate call. A null entry marks an
// unanswered question.
type EvaluateRequest struct {
	Answers []*int `json:"answers"`
}

// EvaluateResponse is the graded submission.
type EvaluateResponse struct {
	AttemptID   string                `json:"attempt_id"`
	Score       int                   `json:"score"`
	Total       int                   `json:"total"`
	Tier        quiz.Tier             `json:"tier"`
	Questions   []quiz.QuestionResult `json:"questions"`
	Topics      []quiz.TopicStat      `json:"topics"`
	StrongTopic string                `json:"strong_topic,omitempty"`
	WeakTopic   string                `json:"weak_topic,omitempty"`
	Feedback    string                `json:"feedback"`
	Source      feedback.Source       `json:"feedback_source"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	all := h.service.Catalog().All()
	out := make([]QuizSummary, len(all))
	for i, q := range all {
		out[i] = QuizSummary{
			ID:        q.ID,
			Title:     q.Title,
			Subject:   q.Subject,
			Duration:  q.Duration,
			Questions: q.Total(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Catalog().Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}

	pub := PublicQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Subject:   q.Subject,
		Duration:  q.Duration,
		Questions: make([]PublicQuestion, len(q.Questions)),
	}
	for i, qq := range q.Questions {
		pub.Questions[i] = PublicQuestion{Prompt: qq.Prompt, Options: qq.Options, Topic: qq.Topic}
	}
	writeJSON(w, http.StatusOK, pub)
}

func (h *handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	answers := make(quiz.AnswerSet, len(req.Answers))
	for i, a := range req.Answers {
		if a == nil {
			answers[i] = quiz.Unanswered
			continue
		}
		if *a < 0 {
			writeError(w, http.StatusBadRequest, "answer indices must be non-negative or null")
			return
		}
		answers[i] = *a
	}

	ev, err := h.service.Evaluate(r.Context(), mux.Vars(r)["id"], answers)
	switch {
	case errors.Is(err, quiz.ErrUnknownQuiz):
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	case errors.Is(err, quiz.ErrTooManyAnswers), errors.Is(err, quiz.ErrAnswerOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.Error("evaluate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	res := ev.Result
	writeJSON(w, http.StatusOK, EvaluateResponse{
		AttemptID:   ev.AttemptID,
		Score:       res.Score,
		Total:       res.Total,
		Tier:        res.Tier,
		Questions:   res.Questions,
		Topics:      res.Topics,
		StrongTopic: res.StrongTopic,
		WeakTopic:   res.WeakTopic,
		Feedback:    ev.Feedback.Text,
		Source:      ev.Feedback.Source,
	})
}

func (h *handler) listAttempts(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeError(w, http.StatusServiceUnavailable, "attempt history is not enabled")
		return
	}

	limit := defaultAttemptLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	opts := store.QueryOpts{Limit: limit}
	if v := r.URL.Query().Get("after"); v != "" {
		after, err := strconv.ParseInt(v, 10, 64)
		if err != nil || after < 0 {
			writeError(w, http.StatusBadRequest, "after must be a sequence number")
			return
		}
		opts.After = after
	}
	if id := r.URL.Query().Get("quiz"); id != "" {
		opts.Equal = map[string]any{"quiz_id": id}
	}

	last, err := h.events.LastSequence(r.Context())
	if err != nil {
		h.log.Error("read sequence failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load attempts")
		return
	}

	attempts, err := h.events.QueryAttempts(r.Context(), opts)
	if err != nil {
		h.log.Error("query attempts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load attempts")
		return
	}
	if attempts == nil {
		attempts = []store.AttemptEvent{}
	}
	w.Header().Set("X-Last-Sequence", strconv.FormatInt(last, 10))
	writeJSON(w, http.StatusOK, attempts)
}

func (h *handler) topicAccuracy(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeError(w, http.StatusServiceUnavailable, "attempt history is not enabled")
		return
	}
	topics, err := h.events.TopicAccuracy(r.Context())
	if err != nil {
		h.log.Error("topic accuracy failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load topics")
		return
	}
	if topics == nil {
		topics = []store.TopicAccuracy{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
