// Command seed populates a MindCredit database with a demo user, random
// transactions and random brain-interface signals.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Populate MindCredit with demo data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("migrate", true, "apply pending migrations before seeding")
	root.PersistentFlags().Int64("seed", 0, "random seed (0 uses the current time)")

	root.AddCommand(userCmd())
	root.AddCommand(transactionsCmd())
	root.AddCommand(signalsCmd())
	root.AddCommand(allCmd())
	return root
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create a user and print its ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			token, _ := cmd.Flags().GetString("device-token")

			return withSeeder(cmd, func(s *seeder) error {
				user, err := s.createUser(cmd.Context(), name, email, token)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), user.ID)
				return nil
			})
		},
	}
	addUserFlags(cmd)
	return cmd
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Insert random transactions for a user in one database transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := userIDFlag(cmd)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetInt("count")

			return withSeeder(cmd, func(s *seeder) error {
				return s.createTransactions(cmd.Context(), userID, count)
			})
		},
	}
	cmd.Flags().String("user-id", "", "user to seed (required)")
	cmd.Flags().Int("count", defaultSignalCount, "number of transactions")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func signalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Publish random emotions and thoughts for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := userIDFlag(cmd)
			if err != nil {
				return err
			}
			emotions, _ := cmd.Flags().GetInt("emotions")
			thoughts, _ := cmd.Flags().GetInt("thoughts")

			return withSeeder(cmd, func(s *seeder) error {
				if err := s.publishEmotions(cmd.Context(), userID, emotions); err != nil {
					return err
				}
				return s.publishThoughts(cmd.Context(), userID, thoughts)
			})
		},
	}
	cmd.Flags().String("user-id", "", "user to seed (required)")
	cmd.Flags().Int("emotions", defaultSignalCount, "number of emotions")
	cmd.Flags().Int("thoughts", defaultSignalCount, "number of thoughts")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func allCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Create a user, then seed its transactions and signals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			token, _ := cmd.Flags().GetString("device-token")
			count, _ := cmd.Flags().GetInt("count")

			return withSeeder(cmd, func(s *seeder) error {
				user, err := s.createUser(cmd.Context(), name, email, token)
				if err != nil {
					return err
				}
				if err := s.createTransactions(cmd.Context(), user.ID, count); err != nil {
					return err
				}
				if err := s.publishEmotions(cmd.Context(), user.ID, count); err != nil {
					return err
				}
				if err := s.publishThoughts(cmd.Context(), user.ID, count); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), user.ID)
				return nil
			})
		},
	}
	addUserFlags(cmd)
	cmd.Flags().Int("count", defaultSignalCount, "number of transactions, emotions and thoughts each")
	return cmd
}

func addUserFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "Demo User", "user name")
	cmd.Flags().String("email", "demo@mindcredit.dev", "user email")
	cmd.Flags().String("device-token", "", "push device token")
}
