package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/platform/config"
	"github.com/SscSPs/card_inventory_app/internal/utils"
	"github.com/google/subcommands"
)

type tokenCmd struct {
	subject string
	expiry  time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "issue a bearer token for the API" }
func (*tokenCmd) Usage() string {
	return `card_inventory token -sub <name> [-exp <duration>]

  Prints a JWT signed with JWT_SECRET for use in the Authorization header.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subject, "sub", "", "Subject the token is issued to")
	f.DurationVar(&c.expiry, "exp", 0, "Token lifetime (defaults to JWT_EXPIRY_DURATION)")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.subject == "" {
		fmt.Fprintln(os.Stderr, "Error: -sub is required")
		return subcommands.ExitUsageError
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	expiry := c.expiry
	if expiry == 0 {
		expiry = cfg.JWTExpiryDuration
	}
	token, err := utils.GenerateJWT(c.subject, cfg.JWTSecret, expiry, cfg.JWTIssuer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(token)
	return subcommands.ExitSuccess
}
