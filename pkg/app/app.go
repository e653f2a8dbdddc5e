// Copyright 2026 The parley Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/account"
	"github.com/ortuman/parley/pkg/c2s"
	"github.com/ortuman/parley/pkg/connectivity"
	"github.com/ortuman/parley/pkg/hook"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/log"
	"github.com/ortuman/parley/pkg/storage"
	"github.com/ortuman/parley/pkg/storage/files"
	"github.com/ortuman/parley/pkg/storage/repository"
	"github.com/ortuman/parley/pkg/trust"
	"github.com/ortuman/parley/pkg/util/crashreporter"
	"github.com/ortuman/parley/pkg/version"
	"github.com/ortuman/parley/pkg/xmpp/jid"
	pkgerrors "github.com/pkg/errors"
)

const (
	defaultBootstrapTimeout = time.Minute
	defaultShutdownTimeout  = time.Second * 30

	// EnvConfigFile overrides the configuration file path.
	EnvConfigFile = "PARLEY_CONFIG_FILE"
)

// ErrAccountNotConfigured is returned when referencing an account missing from configuration.
var ErrAccountNotConfigured = errors.New("app: account not configured")

type starter interface {
	Start(ctx context.Context) error
}

type stopper interface {
	Stop(ctx context.Context) error
}

type startStopper interface {
	starter
	stopper
}

// App is the root data structure of a parley process.
type App struct {
	cfg    *Config
	input  io.Reader
	output io.Writer

	hk       *hook.Hooks
	rep      repository.Repository
	files    *files.Store
	trust    trust.Manager
	asker    trust.Asker
	conn     connectivity.Checker
	registry *account.Registry

	starters []starter
	stoppers []stopper

	waitStopCh chan os.Signal

	logger kitlog.Logger
}

// New makes a new App. Terminal trust questions are read from input and written to output.
func New(cfg *Config, input io.Reader, output io.Writer) *App {
	return &App{
		cfg:        cfg,
		input:      input,
		output:     output,
		waitStopCh: make(chan os.Signal, 1),
		logger:     log.NewDefaultLogger(cfg.Logger.Level, cfg.Logger.Format),
	}
}

// Run starts every configured account, and blocks until a stop signal is received.
func (a *App) Run() error {
	defer crashreporter.RecoverAndExit()

	level.Info(a.logger).Log("msg", "parley is starting...",
		"version", version.Version,
		"go_ver", runtime.Version(),
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
	)
	if err := a.init(a.cfg.Accounts); err != nil {
		return err
	}
	if a.cfg.HTTPPort > 0 {
		a.registerStartStopper(newHTTPServer(a.cfg.HTTPPort, a.registry, a.logger))
	}
	a.registerStartStopper(a.registry)

	if err := a.bootstrap(); err != nil {
		crashreporter.ReportError(err, "phase", "bootstrap")
		return err
	}
	// ...wait for stop signal to shut down
	sig := a.waitForStopSignal()
	level.Info(a.logger).Log("msg", "received stop signal... shutting down...",
		"signal", sig.String(),
	)
	return a.shutdown()
}

// SendFile connects a single configured account, offers the file located at path to peer,
// and waits for the transfer outcome.
func (a *App) SendFile(ctx context.Context, from, peer jid.JID, path string) (jingle.Reason, error) {
	var accCfg *account.Config
	for i := range a.cfg.Accounts {
		j, err := jid.Parse(a.cfg.Accounts[i].JID)
		if err == nil && j.Bare().Equal(from.Bare()) {
			accCfg = &a.cfg.Accounts[i]
			break
		}
	}
	if accCfg == nil {
		return "", pkgerrors.Wrap(ErrAccountNotConfigured, from.String())
	}
	cfg := *accCfg
	cfg.Disabled = false

	if err := a.init([]account.Config{cfg}); err != nil {
		return "", err
	}
	a.registerStartStopper(a.registry)

	if err := a.bootstrap(); err != nil {
		return "", err
	}
	defer func() {
		if err := a.shutdown(); err != nil {
			level.Warn(a.logger).Log("msg", "failed to shutdown", "err", err)
		}
	}()

	acc := a.registry.Account(from)
	if err := acc.WaitOnline(ctx); err != nil {
		return "", pkgerrors.Wrap(err, "app: waiting for connection")
	}
	src, err := a.files.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	sess, err := acc.SendFile(ctx, peer, src)
	if err != nil {
		return "", err
	}
	level.Info(a.logger).Log("msg", "offered file", "sid", sess.ID(), "peer", peer.String(), "name", src.Name(), "size", src.Size())

	select {
	case reason := <-sess.Done():
		return reason, nil
	case <-ctx.Done():
		_ = acc.CancelFile(sess.ID())
		return <-sess.Done(), ctx.Err()
	}
}

func (a *App) init(accounts []account.Config) error {
	a.hk = hook.NewHooks()
	a.files = files.New(a.cfg.Files)

	if err := a.initRepository(a.cfg.Storage); err != nil {
		return err
	}
	if err := a.initTrust(a.cfg.Trust); err != nil {
		return err
	}
	if err := a.initConnectivity(a.cfg.Connectivity); err != nil {
		return err
	}
	a.registry = account.NewRegistry(c2s.Dependencies{
		Trust:        a.trust,
		Asker:        a.asker,
		Connectivity: a.conn,
		Repository:   a.rep,
		Hooks:        a.hk,
	}, a.cfg.Jingle, a.logger)

	rcv := &receiver{
		store:  a.files,
		reject: a.cfg.RejectFiles,
		logger: a.logger,
		lookup: func(j jid.JID) fileAcceptor {
			if acc := a.registry.Account(j); acc != nil {
				return acc
			}
			return nil
		},
	}
	rcv.register(a.hk)

	ctx, cancel := context.WithTimeout(context.Background(), defaultBootstrapTimeout)
	defer cancel()
	for _, accCfg := range accounts {
		if _, err := a.registry.Add(ctx, accCfg); err != nil {
			return pkgerrors.Wrapf(err, "app: adding account %s", accCfg.JID)
		}
	}
	return nil
}

func (a *App) initRepository(cfg storage.Config) error {
	rep, err := storage.New(cfg, a.logger)
	if err != nil {
		return err
	}
	a.rep = rep
	a.registerStartStopper(a.rep)
	return nil
}

func (a *App) initTrust(cfg TrustConfig) error {
	switch cfg.Mode {
	case systemTrustMode, "":
		a.trust = trust.NewSystem(nil)
	case memorizingTrustMode:
		m, err := trust.NewMemorizing(cfg.StoreFile, nil)
		if err != nil {
			return err
		}
		a.trust = m
	default:
		return pkgerrors.Errorf("app: unrecognized trust mode: %s", cfg.Mode)
	}
	if cfg.Interactive {
		a.asker = newTerminalAsker(a.input, a.output)
	}
	return nil
}

func (a *App) initConnectivity(cfg ConnectivityConfig) error {
	switch cfg.Mode {
	case staticConnectivityMode, "":
		a.conn = connectivity.Static(true)
	case dnsConnectivityMode:
		a.conn = connectivity.NewDNSProbe(cfg.Resolver, cfg.ProbeInterval)
	default:
		return pkgerrors.Errorf("app: unrecognized connectivity mode: %s", cfg.Mode)
	}
	return nil
}

func (a *App) registerStartStopper(ss startStopper) {
	a.starters = append(a.starters, ss)
	a.stoppers = append([]stopper{ss}, a.stoppers...)
}

func (a *App) bootstrap() error {
	// spin up all service subsystems
	ctx, cancel := context.WithTimeout(context.Background(), defaultBootstrapTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered starters...
		for _, s := range a.starters {
			if err := s.Start(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) shutdown() error {
	// wait until shutdown has been completed
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered stoppers...
		for _, st := range a.stoppers {
			if err := st.Stop(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) waitForStopSignal() os.Signal {
	signal.Notify(a.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return <-a.waitStopCh
}
