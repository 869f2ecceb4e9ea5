// Command token-generator issues access tokens signed with the configured
// JWT secret, for local development and smoke tests.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/service/auth"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	user := flag.String("user", "", "user ID to issue a token for; random users are generated when empty")
	count := flag.Int("n", 1, "number of tokens to generate when -user is empty")
	flag.Parse()

	if err := run(context.Background(), os.Stdout, *configPath, *user, *count); err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, configPath, user string, count int) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	userIDs, err := targetUsers(user, count)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		token, err := jwtService.GenerateToken(ctx, userID)
		if err != nil {
			return fmt.Errorf("generate token for %s: %w", userID, err)
		}
		fmt.Fprintf(out, "User: %s\nToken: %s\nExpires in: %s\n\n", userID, token, cfg.Auth.TokenLifetime())
	}
	return nil
}

// targetUsers returns the parsed -user ID, or count random IDs when none is given.
func targetUsers(user string, count int) ([]uuid.UUID, error) {
	if user != "" {
		id, err := uuid.Parse(user)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID %q: %w", user, err)
		}
		return []uuid.UUID{id}, nil
	}
	if count < 1 {
		return nil, fmt.Errorf("-n must be at least 1, got %d", count)
	}

	ids := make([]uuid.UUID, count)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids, nil
}
