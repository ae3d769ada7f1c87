package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/redis"
	"github.com/KirkDiggler/rpg-rotation/internal/repositories/journal"
)

var (
	journalSession string
	journalLimit   int
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Print the recent dispatches of a session",
	RunE:  printJournal,
}

func init() {
	journalCmd.Flags().StringVar(&journalSession, "session", "", "session ID logged by run")
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "number of entries")
	_ = journalCmd.MarkFlagRequired("session")
}

func printJournal(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{DB: cfg.Redis.DB, UseTLS: cfg.Redis.UseTLS})
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
	}
	defer func() { _ = client.Close() }()

	repo, err := journal.NewRedisRepository(&journal.Config{Client: client})
	if err != nil {
		return err
	}

	out, err := repo.List(cmd.Context(), &journal.ListInput{
		SessionID: journalSession,
		Limit:     journalLimit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AT\tKIND\tCHARACTER\tABILITY\tVARIANT\tTARGET\tDELTAS")
	for _, e := range out.Entries {
		deltas := ""
		if e.Kind == journal.KindActivated {
			deltas = fmt.Sprintf("vita %+d mana %+d", e.VitaDelta, e.ManaDelta)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.At.Format(time.TimeOnly), e.Kind, e.Character, e.Ability, e.Variant, e.Target, deltas)
	}
	return w.Flush()
}
