// Command mailpreview renders a mail for a list of recipients and prints the
// assembled messages, or sends them through Resend.
//
//	mailpreview -templates ./templates -translations ./locales \
//	    -name welcome -to "alice@example.com:fr,bob@example.com" -data data.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailtpl/pkg/config"
	"github.com/dmitrymomot/mailtpl/pkg/i18n"
	"github.com/dmitrymomot/mailtpl/pkg/logger"
	"github.com/dmitrymomot/mailtpl/pkg/mailer"
	"github.com/dmitrymomot/mailtpl/pkg/mailer/resend"
	"github.com/dmitrymomot/mailtpl/pkg/sanitizer"
)

const sendConcurrency = 4

type appConfig struct {
	Log    logger.Config
	Sentry logger.SentryConfig
	Mailer mailer.Config
	Resend resend.Config
}

type options struct {
	templates    string
	translations string
	name         string
	to           string
	data         string
	send         bool
	sanitize     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.templates, "templates", "templates", "template root directory")
	flag.StringVar(&opts.translations, "translations", "", "directory with {lang}/{namespace}.yaml translations")
	flag.StringVar(&opts.name, "name", "", "mail name, e.g. welcome")
	flag.StringVar(&opts.to, "to", "", `comma separated recipients, "addr" or "addr:lang"`)
	flag.StringVar(&opts.data, "data", "", "YAML file with template data")
	flag.BoolVar(&opts.send, "send", false, "send through Resend instead of printing")
	flag.BoolVar(&opts.sanitize, "sanitize", false, "sanitize HTML bodies")
	flag.Parse()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, logger.LanguageExtractor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts, cfg, log, os.Stdout)
	stop()

	if err != nil {
		log.Error("mailpreview failed", slog.String("error", err.Error()))
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
	sentry.Flush(2 * time.Second)
}

func run(ctx context.Context, opts options, cfg appConfig, log *slog.Logger, out io.Writer) error {
	if opts.name == "" {
		return errors.New("-name is required")
	}

	recipients, err := parseRecipients(opts.to)
	if err != nil {
		return err
	}

	data, err := loadData(opts.data)
	if err != nil {
		return err
	}

	m, err := newMailer(opts, cfg, log)
	if err != nil {
		return err
	}

	emails, err := mailer.NewGroupingBuilder(m).Build(ctx, opts.name, recipients, data)
	if err != nil {
		return err
	}

	langs := slices.Sorted(maps.Keys(emails))
	if !opts.send {
		for _, lang := range langs {
			printEmail(out, emails[lang])
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sendConcurrency)
	for _, lang := range langs {
		email := emails[lang]
		g.Go(func() error {
			if err := m.SendEmail(gctx, email); err != nil {
				return fmt.Errorf("send %s: %w", lang, err)
			}
			log.InfoContext(gctx, "email sent",
				slog.String("id", email.ID),
				slog.String("lang", lang),
				slog.Int("recipients", len(email.To)),
			)
			return nil
		})
	}
	return g.Wait()
}

func newMailer(opts options, cfg appConfig, log *slog.Logger) (*mailer.Mailer, error) {
	rc := cfg.Mailer.RendererConfig()
	if opts.translations != "" {
		tr, err := i18n.New(
			i18n.WithDefaultLanguage(cfg.Mailer.DefaultLanguage),
			i18n.WithYAMLDir(os.DirFS(opts.translations)),
		)
		if err != nil {
			return nil, fmt.Errorf("load translations: %w", err)
		}
		rc.I18n = tr
	}

	mopts := []mailer.Option{
		mailer.WithConfig(cfg.Mailer),
		mailer.WithLogger(log),
	}
	if opts.sanitize {
		mopts = append(mopts, mailer.WithHTMLProcessors(sanitizer.EmailHTML))
	}
	if opts.send {
		sender, err := resend.New(cfg.Resend)
		if err != nil {
			return nil, err
		}
		mopts = append(mopts, mailer.WithSender(sender))
	}

	return mailer.New(mailer.NewRendererWithConfig(os.DirFS(opts.templates), rc), mopts...), nil
}

// parseRecipients reads "a@example.com:fr,b@example.com".
func parseRecipients(s string) ([]mailer.Address, error) {
	var out []mailer.Address
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		addr, lang, _ := strings.Cut(item, ":")
		out = append(out, mailer.Address{
			Email: strings.TrimSpace(addr),
			Lang:  strings.TrimSpace(lang),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("-to needs at least one recipient")
	}
	return out, nil
}

func loadData(path string) (mailer.Context, error) {
	if path == "" {
		return mailer.Context{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	data := mailer.Context{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	return data, nil
}

func printEmail(w io.Writer, email *mailer.Email) {
	fmt.Fprintf(w, "ID:       %s\n", email.ID)
	fmt.Fprintf(w, "Language: %s\n", email.Language)
	fmt.Fprintf(w, "To:       %s\n", strings.Join(email.To, ", "))
	fmt.Fprintf(w, "Subject:  %s\n", email.Subject)
	fmt.Fprintf(w, "Kind:     %s\n", email.Kind())
	if text := email.Text(); text != "" {
		fmt.Fprintf(w, "\n--- text/plain ---\n%s\n", text)
	}
	if html := email.HTML(); html != "" {
		fmt.Fprintf(w, "\n--- text/html ---\n%s\n", html)
	}
	fmt.Fprintln(w)
}
