package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

func newPingCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the endpoint is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.cancel()

			if err := s.client.Ping(s.ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable\n", s.client.Endpoint())
			return err
		},
	}
}

func newSignInCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Verify credentials and print the user's defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(v); err != nil {
				return err
			}
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.cancel()

			cfg := loadConfig(v)
			res, err := persistence.NewXTSAuthenticator(s.client).SignIn(s.ctx, identity.Credentials{
				UserName: cfg.User,
				Password: cfg.Password,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newListCmd(v *viper.Viper) *cobra.Command {
	var offset, limit int
	cmd := &cobra.Command{
		Use:     "list <data-type>",
		Short:   "Print one window of a list, e.g. list Orders --limit 5",
		Example: "  xtsctl list Counterparties --offset 20 --limit 20",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(v); err != nil {
				return err
			}
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.cancel()

			res, err := xts.GetList[json.RawMessage](s.ctx, s.client, xts.NewGetObjectListRequest(args[0], offset, limit))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Total   int64             `json:"total"`
				Objects []json.RawMessage `json:"objects"`
			}{res.Total, res.Objects})
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Position of the first record")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of records")
	return cmd
}

func newGetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "get <data-type> <id>",
		Short: "Print a single record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(v); err != nil {
				return err
			}
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.cancel()

			obj, err := xts.GetObject[json.RawMessage](s.ctx, s.client, xts.NewObjectID(args[0], args[1], ""))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), obj)
		},
	}
}
