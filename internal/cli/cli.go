// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements regctl, the maintenance command line of the
transcription site.

# Commands

	regctl migrate up|down|version
	regctl token --user NAME [--role editor] [--ttl 24h]
	regctl export deaths --domain CAON --year 1887 --out deaths.xlsx
	regctl match --surname Cobb --given James --role male --year 1887 --age 45
	regctl cache flush --domain CAON

Every command reaches its resources through [Deps], so the commands run
against the same services the web pages use.
*/
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/constants"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/platform/sheet"
	"github.com/taibuivan/ontvitals/internal/registry/death"
)

// Matcher finds tree candidates for a transcribed person.
type Matcher interface {
	Find(context context.Context, query familytree.Query) ([]familytree.Candidate, error)
}

// DeathExporter builds the spreadsheet of a death registration listing.
type DeathExporter interface {
	Export(context context.Context, filter death.Filter) (*sheet.Table, error)
}

// Migrator applies the schema migrations.
type Migrator interface {
	Up() error
	Down(steps int) error
	Version() (version uint, dirty bool, err error)
	Close()
}

// CacheInvalidator drops cached reference values.
type CacheInvalidator interface {
	Invalidate(context context.Context, domain string) error
}

// TokenMinter signs access tokens.
type TokenMinter interface {
	GenerateAccessToken(userID, username string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

// Deps opens the resources a command needs. Each opener returns a release
// function the command calls when it is done.
type Deps struct {
	Out    io.Writer
	Logger *slog.Logger

	// DefaultDomain fills --domain when it is not given.
	DefaultDomain func() string

	Migrator func() (Migrator, error)
	Tokens   func() (TokenMinter, error)
	Matcher  func(context context.Context) (Matcher, func(), error)
	Deaths   func(context context.Context) (DeathExporter, func(), error)
	Cache    func(context context.Context) (CacheInvalidator, func(), error)
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	keyColor  = color.New(color.FgCyan, color.Bold)
)

// NewRootCommand assembles the regctl command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "regctl",
		Short:         "Maintenance commands for the vital records transcription site",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(deps.Out)

	root.AddCommand(MigrateCmd(deps))
	root.AddCommand(TokenCmd(deps))
	root.AddCommand(ExportCmd(deps))
	root.AddCommand(MatchCmd(deps))
	root.AddCommand(CacheCmd(deps))
	return root
}
