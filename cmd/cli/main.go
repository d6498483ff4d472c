package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	baseURL    string
	timeout    time.Duration
	configPath string
)

// cliConfig is the optional YAML config file ("bankbook-cli --config file.yaml").
// Flags override file values.
type cliConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankbook-cli",
		Short: "Bankbook CLI tool",
		Long:  `A command line interface for interacting with the Bankbook ledger API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfigFile(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bankbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func applyConfigFile(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg cliConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	flags := cmd.Root().PersistentFlags()
	if cfg.URL != "" && !flags.Changed("url") {
		baseURL = cfg.URL
	}
	if cfg.Timeout != 0 && !flags.Changed("timeout") {
		timeout = cfg.Timeout
	}

	return nil
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var ownerID, accountType, currency string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/accounts", map[string]any{
				"owner_id":     ownerID,
				"account_type": accountType,
				"currency":     currency,
			}, false)
		},
	}
	createCmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	createCmd.Flags().StringVar(&accountType, "type", "savings", "Account type")
	createCmd.Flags().StringVar(&currency, "currency", "", "Currency (defaults to INR server-side)")
	createCmd.MarkFlagRequired("owner")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Get an account with its balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + args[0])
		},
	}

	entriesCmd := &cobra.Command{
		Use:   "entries <account-id>",
		Short: "List an account's ledger entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + args[0] + "/entries")
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List transactions touching an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + args[0] + "/transactions")
		},
	}

	cmd.AddCommand(createCmd, getCmd, entriesCmd, transactionsCmd)

	return cmd
}

func depositCmd() *cobra.Command {
	var accountID, amount, description string
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit into an account",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/deposits", map[string]any{
				"account_id":  accountID,
				"amount":      amount,
				"description": description,
			}, true)
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var accountID, amount, description string
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw from an account",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/withdrawals", map[string]any{
				"account_id":  accountID,
				"amount":      amount,
				"description": description,
			}, true)
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func transferCmd() *cobra.Command {
	var from, to, amount, description string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer between accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/transfers", map[string]any{
				"from_account_id": from,
				"to_account_id":   to,
				"amount":          amount,
				"description":     description,
			}, true)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source account ID")
	cmd.Flags().StringVar(&to, "to", "", "Destination account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	cmd.AddCommand(consistencyCmd)

	return cmd
}

// doPost sends a JSON POST. Money movement requests carry a generated
// Idempotency-Key so a retried command cannot post twice.
func doPost(path string, payload map[string]any, idempotent bool) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotent {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doGet(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}
