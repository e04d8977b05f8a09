package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	_ "go.uber.org/automaxprocs"

	"github.com/robincamp/moviecatalog/internal/conf"
	"github.com/robincamp/moviecatalog/internal/service"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "moviecatalog"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-conf path] <%s>\n", Name, strings.Join(service.Commands(), "|"))
		flag.PrintDefaults()
	}
}

func loadConfig(path string) (*conf.Bootstrap, error) {
	c := config.New(
		config.WithSource(
			env.NewSource("CATALOG_"),
			file.NewSource(path),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, err
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, err
	}
	return &bc, nil
}

func newLogger(c *conf.Log) log.Logger {
	level := log.LevelInfo
	if c != nil && c.Level != "" {
		level = log.ParseLevel(c.Level)
	}
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.name", Name,
		"service.version", Version,
		"run.id", uuid.NewString(),
	)
	return log.NewFilter(logger, log.FilterLevel(level))
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	bc, err := loadConfig(flagconf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(bc.Log)
	helper := log.NewHelper(logger)

	svc, cleanup, err := wireCatalog(bc.Data, logger)
	if err != nil {
		helper.Errorf("init catalog: %v", err)
		os.Exit(1)
	}

	err = svc.Run(context.Background(), flag.Arg(0), os.Stdout)
	cleanup()
	if err != nil {
		helper.Errorf("%s failed: %v", flag.Arg(0), err)
		os.Exit(1)
	}
}
