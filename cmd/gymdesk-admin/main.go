package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-password/password"

	"gymdesk/internal/modkit"
	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/platform/store/schema"

	pricingrepo "gymdesk/internal/services/api/pricing/repo"
	pricingsvc "gymdesk/internal/services/api/pricing/service"
	staffdomain "gymdesk/internal/services/api/staff/domain"
	staffmod "gymdesk/internal/services/api/staff/module"
	"gymdesk/internal/services/events"
)

const usage = `usage: gymdesk-admin <command> [flags]

commands:
  migrate        apply the embedded Postgres schema
  seed-pricing   upsert the default pricing plans
  create-owner   create the Owner account (-username -password -name -email)
  init-events    create the ClickHouse event table
`

func main() {
	_, _ = config.LoadDotEnv()
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	root := config.New()
	l := logger.Named("admin")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.ConfigFrom(root, "admin"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() { _ = st.Close(context.Background()) }()

	deps := modkit.Deps{Cfg: root.Prefix("CORE_"), PG: st.PG, CH: st.CH, Log: *l}

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "migrate":
		applied, err := schema.Apply(ctx, st.PG)
		if err != nil {
			l.Fatal().Err(err).Msg("migrate failed")
		}
		if len(applied) == 0 {
			fmt.Println("schema already up to date")
		}
		for _, name := range applied {
			fmt.Println("applied", name)
		}

	case "seed-pricing":
		res, err := pricingsvc.New(st.PG, pricingrepo.NewPG()).SeedDefaults(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("seed-pricing failed")
		}
		fmt.Printf("pricing seeded: %d created, %d updated\n", res.Created, res.Updated)

	case "create-owner":
		createOwner(ctx, deps, args)

	case "init-events":
		if st.CH == nil {
			l.Fatal().Msg("clickhouse disabled; set SERVICE_CLICKHOUSE_ENABLED=true")
		}
		if err := events.NewCHSink(st.CH).EnsureTable(ctx); err != nil {
			l.Fatal().Err(err).Msg("init-events failed")
		}
		fmt.Println("event table ready:", events.Table)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func createOwner(ctx context.Context, deps modkit.Deps, args []string) {
	l := logger.Named("admin")
	fs := flag.NewFlagSet("create-owner", flag.ExitOnError)
	var (
		fUser  = fs.String("username", "owner", "login name")
		fPass  = fs.String("password", "", "password; generated when empty")
		fName  = fs.String("name", "Owner", "display name")
		fEmail = fs.String("email", "", "email, defaults to <username>@localhost")
	)
	_ = fs.Parse(args)

	pass, generated := *fPass, false
	if pass == "" {
		p, err := password.Generate(16, 4, 0, false, true)
		if err != nil {
			l.Fatal().Err(err).Msg("password generation failed")
		}
		pass, generated = p, true
	}

	svc := staffmod.NewService(deps, staffmod.FromConfig(deps.Cfg))
	s, created, err := svc.EnsureOwner(ctx, staffdomain.OwnerInput{
		Username: *fUser,
		Password: pass,
		Name:     *fName,
		Email:    *fEmail,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("create-owner failed")
	}
	if !created {
		fmt.Println("an owner account already exists; nothing changed")
		return
	}
	fmt.Printf("owner %q created (id %d)\n", s.Username, s.ID)
	if generated {
		fmt.Printf("generated password: %s\n", pass)
	}
}
