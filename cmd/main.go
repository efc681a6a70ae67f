package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/esultanik/reactor/featureflag"
	reactorhttp "github.com/esultanik/reactor/http"
	"github.com/esultanik/reactor/reboot"
	"github.com/esultanik/reactor/smoketest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/encoding/json"
)

var (
	// The reactor version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "reactor_info",
		Help:        "Reactor information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

type config struct {
	Input     string `cli:"" env:"REACTOR_INPUT"      help:"Path to the reboot instruction file ('-' reads STDIN)."`
	Mode      string `cli:"" env:"REACTOR_MODE"       help:"Reboot mode (bounded|unbounded)."`
	JSON      bool   `cli:"" env:"REACTOR_JSON"       help:"Output the result as JSON."`
	AdminAddr string `cli:"" env:"REACTOR_ADMIN_ADDR" help:"Admin listening address (metrics & pprof). Disabled when empty."`
	LogLevel  string `cli:"" env:"REACTOR_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
	LogIndent bool   `cli:"" env:"REACTOR_LOG_INDENT" help:"Indent logs."`

	FeatureFlags []string `cli:",hidden" env:"REACTOR_FEATURE_FLAGS" help:"Comma separated feature flags."`
	SmokeTest    bool     `cli:""        env:"-"                     help:"Run the built-in smoke test scenarios and exit."`
	Version      bool     `cli:""        env:"-"                     help:"Show version."`
	Help         bool     `cli:""        env:"-"                     help:"Show help."`
}

func main() {
	conf := config{
		Input:    "-",
		Mode:     string(reboot.Bounded),
		LogLevel: logs.InfoLevel.String(),
	}

	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Computes the volume left on by a reactor reboot sequence.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if conf.SmokeTest {
		if err := smoketest.Run(ctx); err != nil {
			logs.Fatal(errors.New("smoke test failed").Wrap(err))
		}
		logs.WithTag("version", version).Info("smoke test passed")
		os.Exit(0)
	}

	mode, err := reboot.ParseMode(conf.Mode)
	if err != nil {
		logs.Fatal(err)
	}

	input := os.Stdin
	if conf.Input != "-" {
		f, err := os.Open(conf.Input)
		if err != nil {
			logs.Fatal(errors.New("opening instruction file failed").
				WithTag("input", conf.Input).
				Wrap(err))
		}
		defer f.Close()
		input = f
	}

	parse := reboot.Parse
	featureflag.New(conf.FeatureFlags).IfSet(featureflag.FlagStrictParsing, func() {
		parse = reboot.ParseStrict
	})

	instructions, err := parse(input)
	if err != nil {
		logs.Fatal(errors.New("loading reboot instructions failed").
			WithTag("input", conf.Input).
			Wrap(err))
	}

	var wg sync.WaitGroup
	if conf.AdminAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reactorhttp.ListenAndServe(ctx, &http.Server{
				Addr:    conf.AdminAddr,
				Handler: reactorhttp.AdminHandler(version),
			})
		}()
	}

	logs.WithTag("version", version).
		WithTag("mode", string(mode)).
		WithTag("instructions", len(instructions)).
		Info("starting reactor reboot")

	start := time.Now()
	volume, err := reboot.Reboot(instructions, mode)
	if err != nil {
		logs.Fatal(errors.New("reboot failed").Wrap(err))
	}

	logs.WithTag("volume", volume).
		WithTag("duration", time.Since(start).String()).
		Info("reactor reboot complete")

	if conf.JSON {
		out, err := json.Marshal(struct {
			Mode   string `json:"mode"`
			Volume int64  `json:"volume"`
		}{
			Mode:   string(mode),
			Volume: volume,
		})
		if err != nil {
			logs.Fatal(errors.New("encoding result failed").Wrap(err))
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(volume)
	}

	cancel()
	wg.Wait()
}
