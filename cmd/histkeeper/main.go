package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-hist-keeper/internal/cli"
	"github.com/MKhiriev/go-hist-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRootCommand(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	code := cli.Execute(ctx, root)

	stop()
	os.Exit(code)
}
