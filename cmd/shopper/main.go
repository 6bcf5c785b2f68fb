// Command shopper is a terminal front end for the Fit Bazaar storefront.
//
//	shopper products
//	shopper buy -payment cash 1 1 2
//	shopper register -email you@example.com -password secret
//	shopper login -email you@example.com -password secret
//	shopper apply-seller -name "Iron Temple" -license TL-2291 -description "..."
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Anhamd/fitbazzar/internal/config"
	"github.com/Anhamd/fitbazzar/internal/logger"
	"github.com/Anhamd/fitbazzar/internal/storefront"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	session := storefront.NewSession(storefront.NewClient(cfg.Client.APIBaseURL, cfg.Client.Timeout))
	log.Debug("session started", "session_id", session.ID, "api", cfg.Client.APIBaseURL)

	if err := run(context.Background(), session, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Debug("command failed", "command", os.Args[1], "error", err)
		fmt.Fprintln(os.Stderr, storefront.Notice(err))
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: shopper <products|buy|register|login|apply-seller> [flags]")
}

func run(ctx context.Context, s *storefront.Session, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "products":
		return listProducts(ctx, s, out)
	case "buy":
		return buy(ctx, s, args, out)
	case "register", "login":
		return auth(ctx, s, cmd, args, out)
	case "apply-seller":
		return applySeller(ctx, s, args, out)
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func listProducts(ctx context.Context, s *storefront.Session, out io.Writer) error {
	if err := s.LoadCatalog(ctx); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE (TK)")
	for _, p := range s.Catalog.Products() {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", p.ID, p.Name, p.Price)
	}
	return tw.Flush()
}

func buy(ctx context.Context, s *storefront.Session, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	payment := fs.String("payment", "cash", "payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := s.LoadCatalog(ctx); err != nil {
		return err
	}
	s.Cart.OnChange(func(v storefront.View) {
		fmt.Fprintf(out, "Cart: %d item(s), total %d TK\n", v.Count, v.Total)
	})
	for _, raw := range fs.Args() {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", raw)
		}
		if _, err := s.AddToCart(id); err != nil {
			return err
		}
	}

	receipt, err := s.Checkout(ctx, *payment)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Order Confirmed! Order ID: %d. Thank you for shopping with Fit Bazaar.\n", receipt.OrderID)
	return nil
}

func auth(ctx context.Context, s *storefront.Session, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		msg string
		err error
	)
	if cmd == "register" {
		msg, err = s.Register(ctx, *email, *password)
	} else {
		msg, err = s.Login(ctx, *email, *password)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, msg)
	if token := s.Token(); token != "" {
		fmt.Fprintln(out, "Token:", token)
	}
	return nil
}

func applySeller(ctx context.Context, s *storefront.Session, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("apply-seller", flag.ContinueOnError)
	name := fs.String("name", "", "boutique name")
	license := fs.String("license", "", "trade license")
	description := fs.String("description", "", "what you sell")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := s.ApplySeller(ctx, storefront.SellerApplication{
		BoutiqueName: *name,
		TradeLicense: *license,
		Description:  *description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Application Submitted! Your ID: %d\n", id)
	return nil
}
