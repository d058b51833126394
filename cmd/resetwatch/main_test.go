package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/tracker"
)

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"characters", "vendors", "watch", "export", "migrate", "version"} {
		assert.NotNil(t, findSubcommand(rootCmd, name), "%s subcommand should exist", name)
	}

	vendors := findSubcommand(rootCmd, "vendors")
	require.NotNil(t, vendors)
	for _, name := range []string{"list", "add", "update", "reset", "delete"} {
		assert.NotNil(t, findSubcommand(vendors, name), "vendors %s should exist", name)
	}

	flag := rootCmd.PersistentFlags().Lookup("character")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}

func TestVendorsUpdateCmd_HasNoZoneFlag(t *testing.T) {
	assert.Nil(t, vendorsUpdateCmd().Flag("zone"))
	assert.NotNil(t, vendorsAddCmd().Flag("zone"))

	force := vendorsDeleteCmd().Flag("force")
	require.NotNil(t, force)
	assert.Equal(t, "false", force.DefValue)
}

func TestMigrateCmd_Defaults(t *testing.T) {
	cmd := migrateCmd()
	assert.Equal(t, "json", cmd.Flag("from").DefValue)
	assert.Equal(t, "sqlite", cmd.Flag("to").DefValue)
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewBufferString("y\n"))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  dir: "+dataDir+"\nlogging:\n  level: error\n"), 0600))

	out, err := runRoot(t, "--config", cfgPath, "vendors", "add", "Ana", "--zone", "Dusk", "--council", "12", "--hours", "2", "--category", "Armor")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Ana (Dusk, 12K council")
	assert.FileExists(t, filepath.Join(dataDir, "Default_vendors.json"))

	out, err = runRoot(t, "--config", cfgPath, "vendors", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Default")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Council pool: 12K")

	out, err = runRoot(t, "--config", cfgPath, "vendors", "reset", "Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "[y/N]")
	assert.Contains(t, out, "Reset Ana (12K council)")

	out, err = runRoot(t, "--config", cfgPath, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "character: Default")
	assert.Contains(t, out, "name: Ana")
	assert.Contains(t, out, "- Armor")

	out, err = runRoot(t, "--config", cfgPath, "characters", "create", "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Created Bob with 1 vendor")

	_, err = runRoot(t, "--config", cfgPath, "vendors", "delete", "Nobody", "--force")
	require.ErrorIs(t, err, common.ErrVendorNotFound)
}

func TestCommands_UnusableDataDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	cfgPath := filepath.Join(dir, "config.yaml")
	dataDir := filepath.Join(blocker, "data")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  dir: "+dataDir+"\nlogging:\n  level: error\n"), 0600))

	out, err := runRoot(t, "--config", cfgPath, "characters", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Default")
	assert.Contains(t, out, "storage unavailable")

	_, err = runRoot(t, "--config", cfgPath, "characters", "create", "Bob")
	require.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = runRoot(t, "--config", cfgPath, "vendors", "list")
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestInitTracker_ContinuesWithoutStorage(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  dir: "+filepath.Join(blocker, "data")+"\nlogging:\n  level: error\n"), 0600))
	previous := cfgFile
	cfgFile = cfgPath
	t.Cleanup(func() { cfgFile = previous })
	require.NoError(t, initConfig(nil, nil))

	ctx := context.Background()
	tr, cleanup, err := initTracker(ctx, false)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, model.DefaultCharacter, tr.Character())
	assert.Empty(t, tr.Vendors())
	require.ErrorIs(t, tr.LoadErr(), common.ErrStorageUnavailable)

	_, err = tr.AddVendor(ctx, tracker.VendorInput{Name: "Ana", Council: "1"})
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Empty(t, tr.Vendors())

	_, _, err = initTracker(ctx, true)
	require.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = redirectLogs(filepath.Join(blocker, "data"))
	assert.Error(t, err)
}
