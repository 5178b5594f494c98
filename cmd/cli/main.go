package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/auth"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/postgres"
)

var (
	baseURL   string
	timeout   time.Duration
	authToken string
	tenantID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pokerpal-cli",
		Short: "PokerPal CLI tool",
		Long:  `A command line interface for interacting with the PokerPal API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PokerPal API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("POKERPAL_TOKEN"), "Bearer token")
	rootCmd.PersistentFlags().StringVar(&tenantID, "tenant", os.Getenv("POKERPAL_TENANT"), "Tenant (club) ID")

	rootCmd.AddCommand(assistantCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(tournamentsCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func assistantCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "assistant [text]",
		Short: "Send a natural-language request to the assistant",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := ""
			if len(args) > 0 {
				text = args[0]
			}
			doRequest(http.MethodPost, "/api/v1/assistant", map[string]any{
				"text":    text,
				"confirm": confirm,
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the pending operation")
	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [actor-id]",
		Short: "Show a membership's balances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/memberships/"+args[0], nil)
		},
	}
}

func depositCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "deposit [actor-id] [amount]",
		Short: "Deposit into a member's balance",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/memberships/"+args[0]+"/deposit", map[string]any{
				"amount":      args[1],
				"description": description,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Transaction description")
	return cmd
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [tournament-id]",
		Short: "Register for a tournament",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/tournaments/"+args[0]+"/register", nil)
		},
	}
}

func tournamentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tournaments",
		Short: "List the club's tournaments",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/tournaments", nil)
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		secret     string
		actorID    string
		email      string
		expiration time.Duration
		roles      []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a development JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			roleMap, err := parseRoles(roles)
			if err != nil {
				return err
			}

			manager := auth.NewJWTManager(secret, expiration)
			token, err := manager.Generate(actorID, email, roleMap)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret")
	cmd.Flags().StringVar(&actorID, "actor", "dev-actor", "Actor ID")
	cmd.Flags().StringVar(&email, "email", "dev@example.com", "Actor email")
	cmd.Flags().DurationVar(&expiration, "expiration", 24*time.Hour, "Token lifetime")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "Tenant role as club=ROLE (repeatable)")
	cmd.MarkFlagRequired("secret")

	return cmd
}

func migrateCmd() *cobra.Command {
	var (
		databaseURL    string
		migrationsPath string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	cmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "internal/infrastructure/postgres/migrations", "Path to the migration files")

	cliLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, migrationsPath, cliLogger)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, migrationsPath, cliLogger)
		},
	})

	return cmd
}

// parseRoles turns club=ROLE pairs into the token's role map.
func parseRoles(pairs []string) (map[string]domain.Role, error) {
	roles := make(map[string]domain.Role, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid role %q, expected club=ROLE", pair)
		}
		role := domain.Role(strings.ToUpper(parts[1]))
		if !role.IsValid() {
			return nil, fmt.Errorf("unknown role %q", parts[1])
		}
		roles[parts[0]] = role
	}
	return roles, nil
}

func doRequest(method, path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		fmt.Println(string(data))
		return
	}
	printJSON(decoded)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
