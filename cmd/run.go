package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/app"
	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/llm"
	"github.com/abhisek/edumentor/internal/mentor"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/screens/home"
	"github.com/abhisek/edumentor/internal/selfupdate"
	"github.com/abhisek/edumentor/internal/store"
)

// Feedback replies stay short; the mentor gets a little more room.
const (
	feedbackMaxTokens = 300
	mentorMaxTokens   = 800
)

// services bundles everything a command needs to evaluate and chat.
type services struct {
	store    *store.Store
	catalog  *quiz.Catalog
	provider llm.Provider
	config   llm.Config

	feedbackGen llm.TextGenerator
	mentorGen   llm.TextGenerator

	exams  *ex.Service
	mentor *mentor.Conversation
}

type serviceOptions struct {
	offline   bool
	withStore bool
	cache     feedback.Cache
}

// buildServices opens the store and wires the LLM provider. A missing
// provider is reported on stderr and leaves the generators nil so feedback
// falls back to the fixed sentence.
func buildServices(cmd *cobra.Command, opts serviceOptions) (*services, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}
	svc := &services{catalog: catalog}

	var eventRepo store.EventRepo
	if opts.withStore {
		st, err := openStore(cmd)
		if err != nil {
			return nil, err
		}
		svc.store = st
		eventRepo = st.EventRepo()
	}

	if !opts.offline {
		provider, cfg, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Feedback will use the offline message and the mentor is unavailable.")
		} else {
			svc.provider = provider
			svc.config = cfg
			svc.feedbackGen = llm.NewTextGenerator(provider, llm.GeneratorOptions{
				System:      quiz.FeedbackSystemPrompt,
				MaxTokens:   feedbackMaxTokens,
				Temperature: 0.4,
			})
			svc.mentorGen = llm.NewTextGenerator(provider, llm.GeneratorOptions{
				System:      mentor.SystemPrompt,
				MaxTokens:   mentorMaxTokens,
				Temperature: 0.7,
			})
		}
	}

	var reqOpts []feedback.Option
	if opts.cache != nil {
		reqOpts = append(reqOpts, feedback.WithCache(opts.cache))
	}
	requester := feedback.NewRequester(svc.feedbackGen, reqOpts...)

	var recorder ex.AttemptRecorder
	if eventRepo != nil {
		recorder = ex.NewStoreRecorder(eventRepo)
	}
	svc.exams = ex.NewService(catalog, requester, recorder)

	if svc.mentorGen != nil {
		svc.mentor = mentor.New(svc.mentorGen, mentor.DefaultMaxTurns)
	}
	return svc, nil
}

// eventRepo returns the store's repo, or nil without a store.
func (s *services) eventRepo() store.EventRepo {
	if s.store == nil {
		return nil
	}
	return s.store.EventRepo()
}

// status is the header label for the TUI.
func (s *services) status() string {
	if s.provider == nil {
		return "offline"
	}
	return s.provider.ModelID()
}

func (s *services) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	offline, _ := cmd.Flags().GetBool("offline")
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	svc, err := buildServices(cmd, serviceOptions{offline: offline, withStore: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	opts := app.Options{
		Deps: home.Deps{
			Exams:         svc.exams,
			Mentor:        svc.mentor,
			Events:        svc.eventRepo(),
			Offline:       svc.provider == nil,
			LatestVersion: latestVersion(cmd.Context()),
		},
		Status:     svc.status(),
		SkipSplash: noSplash,
	}
	return app.Run(opts)
}

// latestVersion returns a newer release tag, or "" when up to date, on a dev
// build, or when the check fails.
func latestVersion(ctx context.Context) string {
	if version == selfupdate.DevVersion {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil || !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
