package main

import (
	"context"
	"edustocks/api"
	"edustocks/cmd"
	"edustocks/internal/db"
	"edustocks/internal/util"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "edustocks",
		Short:         "Educational stock trading simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCommand(),
		newQuoteCommand(),
		newSearchCommand(),
		newLessonsCommand(),
		newMigrateCommand(),
	)
	return root
}

// withHandler builds the dependencies, runs fn and releases them.
func withHandler(fn func(ctx context.Context, handler *api.ApiHandler) error) error {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		return err
	}
	defer cmd.CloseDependencies(handler)
	return fn(context.Background(), handler)
}

func printJson(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newServeCommand() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP api",
		RunE: func(c *cobra.Command, args []string) error {
			if port == 0 {
				secrets, err := util.LoadSecrets()
				if err != nil {
					return err
				}
				port = secrets.Port
			}
			return withHandler(func(ctx context.Context, handler *api.ApiHandler) error {
				return handler.StartApi(port)
			})
		},
	}
	c.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (defaults to the configured port)")
	return c
}

func newQuoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL...",
		Short: "Print quotes for one or more symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return withHandler(func(ctx context.Context, handler *api.ApiHandler) error {
				for _, symbol := range args {
					result, err := handler.QuoteService.GetQuote(ctx, symbol)
					if err != nil {
						return fmt.Errorf("failed to get quote for %s: %w", symbol, err)
					}
					fmt.Fprintf(
						c.OutOrStdout(),
						"%-6s %-28s %10.2f %+8.2f (%+.2f%%) [%s]\n",
						result.Quote.Symbol,
						result.Quote.DisplayName,
						result.Quote.Price,
						result.Quote.Change,
						result.Quote.ChangePercent,
						result.Source,
					)
				}
				return nil
			})
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the watch list by symbol or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return withHandler(func(ctx context.Context, handler *api.ApiHandler) error {
				for _, result := range handler.QuoteService.SearchQuotes(ctx, args[0]) {
					fmt.Fprintf(c.OutOrStdout(), "%-6s %s\n", result.Quote.Symbol, result.Quote.DisplayName)
				}
				return nil
			})
		},
	}
}

func newLessonsCommand() *cobra.Command {
	var level string
	var asJson bool
	c := &cobra.Command{
		Use:   "lessons",
		Short: "List the lesson catalog",
		RunE: func(c *cobra.Command, args []string) error {
			return withHandler(func(ctx context.Context, handler *api.ApiHandler) error {
				lessons, err := handler.LessonService.ListLessons(level)
				if err != nil {
					return err
				}
				if asJson {
					return printJson(c.OutOrStdout(), lessons)
				}
				for _, l := range lessons {
					fmt.Fprintf(c.OutOrStdout(), "%-9s %-13s %s\n", l.ID, l.Level, l.Title)
				}
				return nil
			})
		},
	}
	c.Flags().StringVarP(&level, "level", "l", "", "beginner, intermediate or advanced")
	c.Flags().BoolVar(&asJson, "json", false, "print as json")
	return c
}

func newMigrateCommand() *cobra.Command {
	var databaseUrl string
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables",
		RunE: func(c *cobra.Command, args []string) error {
			if databaseUrl == "" {
				secrets, err := util.LoadSecrets()
				if err != nil {
					return err
				}
				databaseUrl = secrets.Store.DatabaseUrl
			}
			if databaseUrl == "" {
				return fmt.Errorf("no database url configured")
			}

			dbConn, err := db.Open(databaseUrl)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			if err := db.Migrate(dbConn); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "schema applied")
			return nil
		},
	}
	c.Flags().StringVar(&databaseUrl, "database-url", "", "postgres connection string (defaults to the configured one)")
	return c
}
