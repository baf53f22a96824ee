package main

import (
	"clientreg/cmd/clientreg/cmds"
	"clientreg/internal/api"
	"clientreg/internal/backends"
	"clientreg/internal/config"
	"clientreg/internal/flow"
	"clientreg/internal/ports"
	"clientreg/internal/presenter"
	"clientreg/internal/pub"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	log "github.com/sirupsen/logrus"
)

const (
	CmdServe  = "serve"
	CmdShell  = "shell"
	CmdImport = "import"
	CmdList   = "list"

	// LogTopic labels change events when no SNS topic is configured.
	LogTopic = "clientreg-changes"
)

var errUsage = errors.New("usage: clientreg [serve [-port N] | shell | import <file.yml> | list [-filter EXPR]]")

func main() {
	config.LoadEnvFile()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	settings := config.FromEnv()
	log.SetLevel(settings.LogLevel)

	cmd := CmdServe
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	store, err := backends.ClientBackendFromEnv(settings.SessionID, settings.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize client store: %w", err)
	}
	publisher, topic, err := newPublisher(ctx, settings)
	if err != nil {
		return err
	}
	d := flow.NewDispatcher(store, publisher, topic, settings.SessionID)

	switch cmd {
	case CmdServe:
		fs := flag.NewFlagSet(CmdServe, flag.ContinueOnError)
		fs.SetOutput(out)
		port := fs.Int("port", settings.Port, "HTTP listen port")
		if err := fs.Parse(args); err != nil {
			return err
		}
		defer endSession(store)
		return serve(ctx, *port, d, settings)
	case CmdShell:
		defer endSession(store)
		return cmds.Shell(ctx, in, out, d)
	case CmdImport:
		if len(args) != 1 {
			return errUsage
		}
		if _, err := cmds.ImportClients(ctx, d, args[0]); err != nil {
			return err
		}
		return cmds.List(ctx, out, d, "")
	case CmdList:
		fs := flag.NewFlagSet(CmdList, flag.ContinueOnError)
		fs.SetOutput(out)
		filter := fs.String("filter", "", "JMESPath filter over the client list, e.g. [?active]")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return cmds.List(ctx, out, d, *filter)
	default:
		return errUsage
	}
}

func serve(ctx context.Context, port int, d *flow.Dispatcher, settings config.Settings) error {
	notices := presenter.NewNotices(settings.NoticeTTL)
	defer notices.Close()

	stop, done := api.RunServerInterruptible(port, d, notices)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		stop <- struct{}{}
		return <-done
	}
}

// endSession purges the session's clients; a registry lives only as long as its session.
func endSession(store ports.ClientStore) {
	if err := store.ClearAll(context.Background()); err != nil {
		log.WithError(err).Warn("failed to clear session")
	}
}

// newPublisher returns the SNS publisher when EVENTS_SNS_ARN is set, else one that logs events.
func newPublisher(ctx context.Context, settings config.Settings) (ports.Publisher, string, error) {
	if settings.EventsSNSArn == "" {
		return pub.NewLog(log.StandardLogger()), LogTopic, nil
	}

	var snsEndpoint *string
	if settings.SNSEndpoint != "" {
		snsEndpoint = aws.String(settings.SNSEndpoint)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load AWS config: %w", err)
	}
	snsClient := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if snsEndpoint != nil {
			o.BaseEndpoint = snsEndpoint
			if o.Region == "" {
				o.Region = "us-east-1"
			}
			o.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
		}
	})
	return pub.NewSNS(snsClient), settings.EventsSNSArn, nil
}
