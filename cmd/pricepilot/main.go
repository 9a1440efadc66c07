// PricePilot front end: BFF server plus one-shot commands against the
// scraping/AI backend.
//
// Usage:
//
//	pricepilot serve
//	pricepilot search --query "echo dot"
//	pricepilot scrape --url https://www.amazon.in/dp/B0ABC12345
//	pricepilot compare --name "Echo Dot"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/darksuryansh/PricePilot/internal/app"
	"github.com/darksuryansh/PricePilot/internal/config"
	"github.com/darksuryansh/PricePilot/internal/service"
	"github.com/darksuryansh/PricePilot/internal/session"
	"github.com/darksuryansh/PricePilot/pkg/logger"
)

var version = "dev"

func main() {
	cliApp := &cli.App{
		Name:    "pricepilot",
		Usage:   "Multi-platform price comparison shopping assistant",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			scrapeCommand(),
			compareCommand(),
			recentCommand(),
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the view-model server",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New("pricepilot", cfg.LogLevel)

			application, err := app.New(cfg, log)
			if err != nil {
				return fmt.Errorf("init application: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search products by name",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search query", Required: true},
		},
		Action: func(c *cli.Context) error {
			products, _, err := newProductService()
			if err != nil {
				return err
			}
			results, err := products.SearchProducts(c.Context, c.String("query"))
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
}

func scrapeCommand() *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Scrape a product URL and print the normalized view",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Product page URL", Required: true},
		},
		Action: func(c *cli.Context) error {
			products, log, err := newProductService()
			if err != nil {
				return err
			}
			log.Info("scraping product", slog.String("url", c.String("url")))
			view, err := products.LoadFromURL(c.Context, c.String("url"))
			if err != nil {
				return err
			}
			return printJSON(view)
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Compare prices for a product across platforms",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Product name", Required: true},
		},
		Action: func(c *cli.Context) error {
			products, _, err := newProductService()
			if err != nil {
				return err
			}
			result, err := products.ComparePrices(c.Context, c.String("name"))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func recentCommand() *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "List recently scraped products",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 10, Usage: "Max products to list"},
		},
		Action: func(c *cli.Context) error {
			products, _, err := newProductService()
			if err != nil {
				return err
			}
			results, err := products.RecentProducts(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Account password", Required: true, EnvVars: []string{"PRICEPILOT_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			auth, err := newAuthService()
			if err != nil {
				return err
			}
			result, err := auth.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", result.User.Email)
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Account password", Required: true, EnvVars: []string{"PRICEPILOT_PASSWORD"}},
			&cli.StringFlag{Name: "name", Usage: "Display name"},
		},
		Action: func(c *cli.Context) error {
			auth, err := newAuthService()
			if err != nil {
				return err
			}
			result, err := auth.Register(c.Context, c.String("email"), c.String("password"), c.String("name"))
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s\n", result.User.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Log out and clear the stored session token",
		Action: func(c *cli.Context) error {
			auth, err := newAuthService()
			if err != nil {
				return err
			}
			if err := auth.Logout(c.Context); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the user behind the stored session token",
		Action: func(c *cli.Context) error {
			auth, err := newAuthService()
			if err != nil {
				return err
			}
			user, _, err := auth.Restore(c.Context)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

// newProductService builds a backend client and product service for the
// one-shot commands. Tracing stays off; logs go to stderr so stdout is
// parseable output.
func newProductService() (*service.ProductService, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithWriter("pricepilot", cfg.LogLevel, os.Stderr)
	client := app.NewBackendClient(cfg, log)
	return service.NewProductService(client, log, cfg.EnrichTimeout), log, nil
}

func newAuthService() (*service.AuthService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithWriter("pricepilot", cfg.LogLevel, os.Stderr)
	client := app.NewBackendClient(cfg, log)
	store, err := session.NewFileTokenStore(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	return service.NewAuthService(client, store, log), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
