package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"adoptme-web/internal/adapters/backend"
	"adoptme-web/internal/adapters/session/file"
	"adoptme-web/internal/platform/logger"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"
)

// cliSessionID es la clave fija de la sesión del CLI en el archivo.
const cliSessionID = "cli"

// cliEnv son los defaults de los flags; el flag explícito gana.
type cliEnv struct {
	API      string        `env:"ADOPTME_API" envDefault:"http://localhost:5000"`
	Mode     string        `env:"ADOPTME_AUTH_MODE" envDefault:"bearer"`
	Session  string        `env:"ADOPTME_SESSION"`
	Password string        `env:"ADOPTME_PASSWORD"`
	Timeout  time.Duration `env:"ADOPTME_TIMEOUT" envDefault:"10s"`
}

type app struct {
	api         string
	mode        string
	sessionPath string
	password    string
	timeout     time.Duration
	asJSON      bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var defaults cliEnv
	envErr := env.Parse(&defaults)

	a := &app{password: defaults.Password}

	root := &cobra.Command{
		Use:           "adoptctl",
		Short:         "Cliente de terminal de AdoptMe",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return envErr
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.api, "api", defaults.API, "URL base del API")
	pf.StringVar(&a.mode, "mode", defaults.Mode, "bearer | cookie")
	pf.StringVar(&a.sessionPath, "session", defaults.Session, "archivo de sesión (default ~/.adoptme/session.json)")
	pf.DurationVar(&a.timeout, "timeout", defaults.Timeout, "timeout por request")
	pf.BoolVar(&a.asJSON, "json", false, "salida JSON")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "logs de depuración en stderr")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newMeCmd(a),
		newAnimalsCmd(a),
		newRecsCmd(a),
		newDeleteCmd(a),
		newAdoptCmd(a),
		newMetricsCmd(a),
		newProfileCmd(a),
	)
	return root
}

func (a *app) client() (*backend.Client, error) {
	path := a.sessionPath
	if path == "" {
		p, err := file.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("session path: %w", err)
		}
		path = p
	}
	return backend.NewClient(backend.Config{
		BaseURL: a.api,
		Mode:    backend.AuthMode(a.mode),
		Timeout: a.timeout,
	}, file.NewStore(path))
}

func (a *app) logger(cmd *cobra.Command) logger.Logger {
	level := logger.Warn
	if a.verbose {
		level = logger.Debug
	}
	return logger.New(logger.Options{
		Level:  level,
		Format: logger.FormatText,
		App:    "adoptctl",
		Output: cmd.ErrOrStderr(),
	})
}

func sessionContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return session.WithID(ctx, cliSessionID)
}

// friendly traduce errores de sesión a una instrucción.
func friendly(err error) error {
	if errors.Is(err, auth.ErrUnauthenticated) {
		return fmt.Errorf("sessão expirada ou ausente; rode `adoptctl login` (%w)", err)
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
