// Package sshexec runs commands on a remote host over SSH, one session per
// command.
package sshexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/kilianp07/patterns/core/executor"
	"github.com/kilianp07/patterns/core/factory"
	"github.com/kilianp07/patterns/core/logger"
)

// Executor opens a new SSH connection for every Run call and closes it once
// the command has finished.
type Executor struct {
	cfg       Config
	addr      string
	clientCfg *ssh.ClientConfig
	log       logger.Logger
}

// New decodes conf into a Config and returns the executor.
func New(conf map[string]any, log logger.Logger) (*Executor, error) {
	var cfg Config
	if err := factory.Decode(conf, &cfg); err != nil {
		return nil, fmt.Errorf("remote executor config: %w", err)
	}
	return NewExecutor(cfg, log)
}

// NewExecutor validates cfg, loads the credentials and the host key policy.
func NewExecutor(cfg Config, log logger.Logger) (*Executor, error) {
	log = logger.OrNop(log)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("remote executor config: %w", err)
	}
	auth, err := authMethods(cfg)
	if err != nil {
		return nil, &executor.ExecError{Executor: executor.TypeRemote, Op: executor.OpAuth, Err: err}
	}
	hostKeys, err := hostKeyCallback(cfg, log)
	if err != nil {
		return nil, &executor.ExecError{Executor: executor.TypeRemote, Op: executor.OpAuth, Err: err}
	}
	return &Executor{
		cfg:  cfg,
		addr: net.JoinHostPort(cfg.Hostname, strconv.Itoa(cfg.Port)),
		clientCfg: &ssh.ClientConfig{
			User:            cfg.Username,
			Auth:            auth,
			HostKeyCallback: hostKeys,
		},
		log: log,
	}, nil
}

func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if cfg.KeyFile != "" {
		pemBytes, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		var signer ssh.Signer
		if cfg.KeyPassphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(pemBytes, []byte(cfg.KeyPassphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(pemBytes)
		}
		if err != nil {
			return nil, fmt.Errorf("parse key file %s: %w", cfg.KeyFile, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}
	return methods, nil
}

func hostKeyCallback(cfg Config, log logger.Logger) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		log.Warnf("host key verification disabled for %s", cfg.Hostname)
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(cfg.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("load known hosts: %w", err)
	}
	return cb, nil
}

// Addr returns the host:port the executor connects to.
func (e *Executor) Addr() string { return e.addr }

// Run connects, executes command in a fresh session and returns both
// streams. The connection is closed before Run returns.
func (e *Executor) Run(ctx context.Context, command string) (executor.Output, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", e.addr)
	if err != nil {
		return executor.Output{}, e.fail(executor.OpDial, command, err)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, chans, reqs, err := ssh.NewClientConn(conn, e.addr, e.clientCfg)
	if err != nil {
		_ = conn.Close()
		return executor.Output{}, e.fail(executor.OpHandshake, command, e.ctxErr(ctx, err))
	}
	client := ssh.NewClient(c, chans, reqs)
	defer func() {
		if err := client.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			e.log.Debugf("close ssh client %s: %v", e.addr, err)
		}
	}()

	session, err := client.NewSession()
	if err != nil {
		return executor.Output{}, e.fail(executor.OpSession, command, e.ctxErr(ctx, err))
	}
	defer func() { _ = session.Close() }()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	e.log.Debugw("running remote command", map[string]any{"addr": e.addr, "user": e.cfg.Username})
	runErr := session.Run(command)
	out := executor.Output{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}
	if runErr == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return out, e.fail(executor.OpExec, command, ctx.Err())
	}
	var exitErr *ssh.ExitError
	if errors.As(runErr, &exitErr) {
		out.ExitCode = exitErr.ExitStatus()
		return out, nil
	}
	return out, e.fail(executor.OpExec, command, runErr)
}

// ctxErr prefers the context error when the connection was torn down by
// cancellation.
func (e *Executor) ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (e *Executor) fail(op, command string, err error) error {
	return &executor.ExecError{Executor: executor.TypeRemote, Op: op, Command: command, Err: err}
}
