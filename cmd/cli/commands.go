package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/infrastructure/auth"
)

func reserveCmd() *cobra.Command {
	var (
		entries      int
		transactions string
		baseReserve  string
		perTxFee     string
	)

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Calculate the minimum native balance under both rounding policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := decimal.NewFromString(baseReserve)
			if err != nil {
				return fmt.Errorf("invalid --base-reserve: %w", err)
			}
			fee, err := decimal.NewFromString(perTxFee)
			if err != nil {
				return fmt.Errorf("invalid --per-tx-fee: %w", err)
			}
			txCount, err := decimal.NewFromString(transactions)
			if err != nil {
				return fmt.Errorf("invalid --transactions: %w", err)
			}

			calc := domain.NewReserveCalculator(base, fee)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POLICY\tMINIMUM BALANCE")
			for _, policy := range []domain.ReservePolicy{domain.CeilingReserve, domain.HalfUpReserve} {
				reserve, err := calc.Calculate(entries, txCount, policy)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", policy.Name, reserve)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&entries, "entries", domain.EscrowEntryCount, "Ledger entries the account must hold")
	cmd.Flags().StringVar(&transactions, "transactions", "0", "Transactions the account must be able to pay for")
	cmd.Flags().StringVar(&baseReserve, "base-reserve", envOr("BASE_RESERVE", "0.5"), "Native reserve per entry")
	cmd.Flags().StringVar(&perTxFee, "per-tx-fee", envOr("PER_TX_FEE", "0.00001"), "Native fee per transaction")

	return cmd
}

func walletCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <address>",
		Short: "Show balances, signers and thresholds of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newAPIClient(opts).get(cmd.Context(), "/api/v1/wallets/"+args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	})

	return cmd
}

func escrowCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escrow",
		Short: "Escrow operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <address>",
		Short: "Show an escrow wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newAPIClient(opts).get(cmd.Context(), "/api/v1/escrows/"+args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	})

	var parties []string
	closeCmd := &cobra.Command{
		Use:   "close <address>",
		Short: "Build the unsigned envelope that pays out and merges an escrow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePartyFlags(parties)
			if err != nil {
				return err
			}
			body, err := newAPIClient(opts).post(cmd.Context(), "/api/v1/escrows/"+args[0]+"/close", payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
	closeCmd.Flags().StringArrayVar(&parties, "party", nil, "Payout as ADDRESS=AMOUNT, repeatable; omit to pay the provider")
	cmd.AddCommand(closeCmd)

	return cmd
}

type partyPayload struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type closePayload struct {
	Parties []partyPayload `json:"parties_wallet,omitempty"`
}

func parsePartyFlags(values []string) (closePayload, error) {
	payload := closePayload{}
	for _, v := range values {
		address, amount, ok := strings.Cut(v, "=")
		if !ok || address == "" || amount == "" {
			return closePayload{}, fmt.Errorf("invalid --party %q, expected ADDRESS=AMOUNT", v)
		}
		if _, err := decimal.NewFromString(amount); err != nil {
			return closePayload{}, fmt.Errorf("invalid amount in --party %q: %w", v, err)
		}
		payload.Parties = append(payload.Parties, partyPayload{Address: address, Amount: amount})
	}
	return payload, nil
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Operator token operations",
	}

	var (
		subject string
		role    string
		secret  string
		ttl     time.Duration
	)
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint a bearer token for an operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET is required")
			}
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			token, err := auth.NewJWTManager(secret, ttl).Generate(&domain.Operator{Subject: subject, Role: domain.Role(role)})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&subject, "subject", "", "Operator name")
	issueCmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "admin, operator or viewer")
	issueCmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HMAC secret shared with the server")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	cmd.AddCommand(issueCmd)

	return cmd
}
