package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/weeklycommits/internal/adapter/driven/aescbc"
	"github.com/ericfisherdev/weeklycommits/internal/config"
)

// newEncryptTokenCmd builds the operator helper that produces the
// encryptedToken value accepted by the server. The plaintext is read from
// stdin so it never lands in shell history.
func newEncryptTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt-token",
		Short: "Encrypt a GitHub token read from stdin with the configured key and IV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			c, err := aescbc.NewCipher(cfg.EncryptionKey, cfg.EncryptionIV)
			if err != nil {
				return fmt.Errorf("configuring token encryption: %w", err)
			}

			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			token := strings.TrimSpace(line)
			if token == "" {
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}
				return errors.New("reading token: empty input")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Encrypt(token))
			return err
		},
	}
}
