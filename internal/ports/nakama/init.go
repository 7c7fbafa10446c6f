package nakama

import (
	"context"
	"database/sql"

	"gestuno/internal/config"
	"gestuno/internal/ports"
	"gestuno/internal/signal"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, the match handler and the gesture feed for the
// Nakama runtime. One action registry is shared with the feed server so
// predictor pushes reach the match loop; every match draws its own seat
// namespace from it.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if path, ok := env["gestuno_config_path"]; ok {
		if err := config.LoadGameConfig(path); err != nil {
			logger.Warn("InitModule: %v, using defaults", err)
		}
	}
	c := config.GetGameConfig()

	registry := signal.NewRegistry()

	if c.FeedListenAddr != "" {
		feed := signal.NewServer(registry, logger)
		feed.Start(c.FeedListenAddr)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchName, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(registry), nil
	}); err != nil {
		return err
	}

	logger.Info("Gestuno Go module loaded.")
	return nil
}

func newMatchHandler(actions ports.ActionRouter) runtime.Match {
	return &matchHandler{actions: actions}
}
