package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/datastd/internal/infrastructure/config"
	"github.com/eslsoft/datastd/internal/infrastructure/server"
	"github.com/eslsoft/datastd/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
}

// provideMatcher builds the match engine from configuration, keeping the
// usecase layer free of config knowledge.
func provideMatcher(cfg *config.Config) *usecase.Matcher {
	return usecase.NewMatcher(
		usecase.WithThreshold(cfg.Matcher.SimilarityThreshold),
		usecase.WithMaxCandidates(cfg.Matcher.MaxCandidates),
	)
}
