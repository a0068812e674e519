package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
)

// resetFlags restores every flag to its default so tests don't leak state
// through the package-level commands.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for _, c := range []*cobra.Command{rootCmd, promptCmd, configInitCmd} {
			for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) {
					_ = f.Value.Set(f.DefValue)
					f.Changed = false
				})
			}
		}
		cfgFile, debugFlag, logFile = "", false, ""
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInit_WritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestConfigInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("form:\n  locale: pt-BR\n"), 0o600))

	_, err := execute(t, "config", "init", "--config", path)
	require.Error(t, err)

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestConfigSet_UpdatesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path, false))

	out, err := execute(t, "config", "set", "form.locale", "pt-BR", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "form.locale = pt-BR")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "pt-BR", cfg.Form.Locale)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Registration form behaviour")
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path, false))

	_, err := execute(t, "config", "set", "form.locale", "xx", "--config", path)
	require.Error(t, err)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "en", cfg.Form.Locale)
}

func TestConfigSet_WrongArgCount(t *testing.T) {
	_, err := execute(t, "config", "set", "form.locale")
	require.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path, false))

	out, err := execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	require.Equal(t, path, strings.TrimSpace(out))
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("form:\n  locale: en\n  success_delay: 2s\n"), 0o600))
	cfgFile = path

	cfg, used, err := loadConfig(rootCmd)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, 2*time.Second, cfg.Form.SuccessDelay)

	require.NoError(t, rootCmd.Flags().Set("locale", "pt-BR"))
	require.NoError(t, rootCmd.Flags().Set("success-delay", "7s"))
	cfg, _, err = loadConfig(rootCmd)
	require.NoError(t, err)
	require.Equal(t, "pt-BR", cfg.Form.Locale)
	require.Equal(t, 7*time.Second, cfg.Form.SuccessDelay)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  width: 10\n"), 0o600))
	cfgFile = path

	_, _, err := loadConfig(rootCmd)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.width")
}

func TestSetupLogging(t *testing.T) {
	resetFlags(t)
	t.Setenv("SIGNUP_DEBUG", "")

	debug, cleanup, err := setupLogging()
	require.NoError(t, err)
	require.False(t, debug)
	cleanup()

	logFile = filepath.Join(t.TempDir(), "debug.log")
	debugFlag = true
	debug, cleanup, err = setupLogging()
	require.NoError(t, err)
	require.True(t, debug)
	cleanup()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "Signup starting")
}

func TestNewController(t *testing.T) {
	cfg := config.Defaults()
	cfg.Form.Locale = "pt-BR"
	cfg.Form.SuccessDelay = 3 * time.Second

	provider, err := tracing.NewProvider(tracing.DefaultConfig())
	require.NoError(t, err)

	ctrl, err := newController(cfg, provider)
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	require.Equal(t, registration.ModeEditing, ctrl.Mode())
	require.Equal(t, "Cadastro de Usuário", ctrl.Catalog().Text(registration.MsgFormTitle))
}
