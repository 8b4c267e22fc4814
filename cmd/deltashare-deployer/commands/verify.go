package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/naming"
	ucli "github.com/urfave/cli/v2"
)

// VerifyCommand returns the verify command, which probes a deployed app's
// health endpoint.
func VerifyCommand(logger *zerolog.Logger) *ucli.Command {
	return &ucli.Command{
		Name:  "verify",
		Usage: "Check that a deployed function app is healthy",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:     "app",
				Usage:    "Function app name",
				Required: true,
			},
			&ucli.StringFlag{
				Name:  "key",
				Usage: "Function key",
			},
			&ucli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: 30 * time.Second,
			},
		},
		Action: func(c *ucli.Context) error {
			ctx := c.Context

			healthURL := naming.BaseURL(c.String("app")) + "/api/health"
			if key := c.String("key"); key != "" {
				healthURL += "?code=" + url.QueryEscape(key)
			}

			logger.Info().Str("url", healthURL).Msg("Probing health endpoint")

			client := &http.Client{Timeout: c.Duration("timeout")}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("health check request failed: %w", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("health check returned status %d: %s", resp.StatusCode, body)
			}

			var health struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(body, &health); err != nil {
				return fmt.Errorf("health check returned unparseable body: %w", err)
			}
			if health.Status != "healthy" {
				return fmt.Errorf("unexpected health status %q", health.Status)
			}

			fmt.Printf("\n✓ Verification successful\n")
			fmt.Printf("  %s reports: %s\n", c.String("app"), health.Message)
			return nil
		},
	}
}
