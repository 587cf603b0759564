package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	grpcclient "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/grpc_client"
	loginfra "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyServerAddress = "server_address"
	envServerAddress = "SERVER_ADDRESS"
	defaultName      = "Tonic"
	defaultTimeout   = 10 * time.Second
)

// newRootCmd builds the CLI with its own viper instance so tests do not share state.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "greeter-client",
		Short: "Call Greeter.SayHello once and print the reply",
		Long: `greeter-client dials the Greeter service at SERVER_ADDRESS (or --addr),
sends a single SayHello request and prints the reply message.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			return runSayHello(cmd, v.GetString(keyServerAddress), name, timeout)
		},
	}

	cmd.Flags().StringP("addr", "a", "", "Greeter server address host:port (env SERVER_ADDRESS)")
	cmd.Flags().StringP("name", "n", defaultName, "Name to greet")
	cmd.Flags().Duration("timeout", defaultTimeout, "Per-call timeout")

	_ = v.BindPFlag(keyServerAddress, cmd.Flags().Lookup("addr"))
	_ = v.BindEnv(keyServerAddress, envServerAddress)

	return cmd
}

func runSayHello(cmd *cobra.Command, addr, name string, timeout time.Duration) error {
	target := normalizeTarget(addr)
	if target == "" {
		return errors.New("server address is required: set SERVER_ADDRESS or --addr")
	}

	client, cleanup, err := wireGreeterClient(grpcclient.Target(target), nil, loginfra.DefaultConfig("greeter-client", Version))
	if err != nil {
		return fmt.Errorf("dial %s: %w", target, err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	reply, err := client.SayHello(ctx, name)
	if err != nil {
		return fmt.Errorf("say hello: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
	return nil
}

// normalizeTarget accepts both "host:port" and the "http://host:port" form used by older clients.
func normalizeTarget(addr string) string {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimPrefix(addr, "http://")
	return strings.TrimSuffix(addr, "/")
}
