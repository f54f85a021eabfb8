// Command menuctl prints the menu a role would see, resolving it locally from
// the catalog and access entries served by a running SMS API.
//
//	menuctl -url http://localhost:8080/api/sms -role 3 -user admin -password secret
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/infrastructure/smsapi"
	"github.com/mmaya/sms-monitoreo/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		baseURL  = flag.String("url", envOr("SMS_API_URL", "http://localhost:8080/api/sms"), "API base URL")
		token    = flag.String("token", os.Getenv("SMS_API_TOKEN"), "bearer token")
		user     = flag.String("user", os.Getenv("SMS_API_USER"), "login username, used when no token is given")
		password = flag.String("password", os.Getenv("SMS_API_PASSWORD"), "login password")
		roleID   = flag.Int64("role", envInt64("SMS_ROLE_ID"), "role id to resolve")
		asJSON   = flag.Bool("json", false, "print the resolved menu as JSON")
		timeout  = flag.Duration("timeout", 15*time.Second, "overall timeout")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: true, Service: "menuctl", Output: os.Stderr})

	if *roleID <= 0 {
		fmt.Fprintln(os.Stderr, "menuctl: -role is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := smsapi.New(*baseURL, smsapi.WithToken(*token))
	if *token == "" && *user != "" {
		if _, err := client.Login(ctx, *user, *password); err != nil {
			log.Error().Err(err).Str("user", *user).Msg("login failed")
			os.Exit(1)
		}
	}

	menu := resolve(ctx, client, *roleID)

	var err error
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(menu)
	} else {
		err = printMenu(os.Stdout, *roleID, menu)
	}
	if err != nil {
		log.Error().Err(err).Msg("write output")
		os.Exit(1)
	}
}

type menuSource interface {
	MenuCatalog(ctx context.Context) ([]domain.MenuItem, error)
	AccessEntries(ctx context.Context, roleID int64) ([]domain.AccessEntry, error)
}

// resolve fetches both inputs concurrently. A failed fetch counts as an empty
// list, so the role sees nothing rather than too much.
func resolve(ctx context.Context, src menuSource, roleID int64) domain.VisibleMenu {
	log := logger.Component("menuctl")

	var (
		catalog []domain.MenuItem
		access  []domain.AccessEntry
		g       errgroup.Group
	)
	g.Go(func() error {
		items, err := src.MenuCatalog(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("menu catalog unavailable")
			return nil
		}
		catalog = domain.ActiveItems(items)
		return nil
	})
	g.Go(func() error {
		entries, err := src.AccessEntries(ctx, roleID)
		if err != nil {
			log.Warn().Err(err).Int64("role_id", roleID).Msg("access entries unavailable")
			return nil
		}
		access = entries
		return nil
	})
	_ = g.Wait()

	menu := domain.ResolveMenu(catalog, access)
	log.Debug().
		Int64("role_id", roleID).
		Int("catalog_items", len(catalog)).
		Int("access_entries", len(access)).
		Int("leaves", menu.LeafCount()).
		Msg("menu resolved")
	return menu
}

func printMenu(w io.Writer, roleID int64, menu domain.VisibleMenu) error {
	if len(menu) == 0 {
		_, err := fmt.Fprintf(w, "role %d: no visible entries\n", roleID)
		return err
	}
	for _, s := range menu {
		if _, err := fmt.Fprintf(w, "%s\n", s.Label); err != nil {
			return err
		}
		for _, l := range s.Leaves {
			if _, err := fmt.Fprintf(w, "  %-30s %s\n", l.Label, l.View); err != nil {
				return err
			}
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt64(key string) int64 {
	n, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
