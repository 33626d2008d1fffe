// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CacheCmd returns the reference cache commands. Run flush after adding a
// county or township so the pages stop serving the cached lists.
func CacheCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the reference data cache",
	}

	flush := &cobra.Command{
		Use:   "flush",
		Short: "Drop the cached domain, county and township names of a domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			domain, _ := cmd.Flags().GetString("domain")
			if domain == "" {
				domain = deps.DefaultDomain()
			}

			cache, release, err := deps.Cache(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := cache.Invalidate(cmd.Context(), domain); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reference cache of %s\n", okColor.Sprint("flushed"), keyColor.Sprint(domain))
			return nil
		},
	}
	flush.Flags().String("domain", "", "Domain code; the configured default when empty")
	cmd.AddCommand(flush)

	return cmd
}
