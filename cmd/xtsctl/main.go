// Command xtsctl talks to the accounting service endpoint directly. It is
// meant for checking connectivity and inspecting raw records while the
// gateway is being configured.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erp/backoffice/internal/infrastructure/xts"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cliConfig is resolved from flags, then BACKOFFICE_* environment variables.
type cliConfig struct {
	Endpoint string
	InfoBase string
	User     string
	Password string
	Timeout  time.Duration
}

func loadConfig(v *viper.Viper) cliConfig {
	return cliConfig{
		Endpoint: v.GetString("xts.endpoint"),
		InfoBase: v.GetString("xts.infobase"),
		User:     v.GetString("xts.user"),
		Password: v.GetString("xts.password"),
		Timeout:  v.GetDuration("xts.timeout"),
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "xtsctl",
		Short:         "Inspect the accounting service endpoint",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.String("endpoint", "", "Endpoint URL (or set BACKOFFICE_XTS_ENDPOINT)")
	flags.String("info-base", "", "Info base id sent with every request")
	flags.StringP("user", "u", "", "User name (or set BACKOFFICE_XTS_USER)")
	flags.StringP("password", "p", "", "Password (or set BACKOFFICE_XTS_PASSWORD)")
	flags.Duration("timeout", 30*time.Second, "Request timeout")
	_ = v.BindPFlag("xts.endpoint", flags.Lookup("endpoint"))
	_ = v.BindPFlag("xts.infobase", flags.Lookup("info-base"))
	_ = v.BindPFlag("xts.user", flags.Lookup("user"))
	_ = v.BindPFlag("xts.password", flags.Lookup("password"))
	_ = v.BindPFlag("xts.timeout", flags.Lookup("timeout"))

	root.AddCommand(
		newPingCmd(v),
		newSignInCmd(v),
		newListCmd(v),
		newGetCmd(v),
	)
	return root
}

// session carries a ready client and a context holding the credentials.
type session struct {
	client *xts.Client
	ctx    context.Context
	cancel context.CancelFunc
}

func openSession(cmd *cobra.Command, v *viper.Viper) (*session, error) {
	cfg := loadConfig(v)
	client, err := xts.NewClient(xts.Config{
		Endpoint: cfg.Endpoint,
		InfoBase: cfg.InfoBase,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	if cfg.User != "" {
		ctx = xts.WithCredentials(ctx, cfg.User, cfg.Password)
	}
	return &session{client: client, ctx: ctx, cancel: cancel}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func requireUser(v *viper.Viper) error {
	if v.GetString("xts.user") == "" {
		return fmt.Errorf("a user name is required: pass --user or set BACKOFFICE_XTS_USER")
	}
	return nil
}
