package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshsnaz/zidio-job-platform/internal/config"
	"github.com/arshsnaz/zidio-job-platform/internal/logging"
	"github.com/arshsnaz/zidio-job-platform/internal/memstore"
	"github.com/arshsnaz/zidio-job-platform/internal/schemas"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath = ""
		servePort = 0
		seedPath = ""
		statesWithInterviews = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

func TestStatesCommand(t *testing.T) {
	resetFlags(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"states", "--interviews"})

	require.NoError(t, rootCmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "WORKFLOW STATES")
	assert.Contains(t, output, "FINAL_REVIEW (Final Review)")
	assert.Contains(t, output, "INTERVIEW TYPES")
}

func TestLoadConfig_PortOverride(t *testing.T) {
	resetFlags(t)

	servePort = 9090
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)

	servePort = 70000
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_File(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "hiring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\nworkflow:\n  bulk_concurrency: 4\n"), 0o600))
	configPath = path

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Workflow.BulkConcurrency)
}

func TestBuildCollaborators_InMemorySeed(t *testing.T) {
	resetFlags(t)

	seed := `{
	  "applications": [{"id": 3, "student_id": 30, "job_id": 1,
	    "student": {"id": 30, "name": "Ann", "email": "ann@student.io"}}],
	  "users": [{"id": 1, "name": "Bob", "email": "bob@x.com"}]
	}`
	seedPath = filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o600))

	ctx := context.Background()
	c, err := buildCollaborators(ctx, &config.Config{}, logging.Nop())
	require.NoError(t, err)
	defer c.close()

	app, err := c.apps.GetApplication(ctx, 3)
	require.NoError(t, err)
	assert.True(t, app.HasApplicant())

	u, err := c.users.GetUserByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)

	require.NoError(t, c.notifier.NotifyApplicationStatusUpdate(ctx, 3, "hello"))
	store, ok := c.apps.(*memstore.Store)
	require.True(t, ok)
	assert.Len(t, store.Notifications(3), 1)
}

func TestBuildCollaborators_MissingSeed(t *testing.T) {
	resetFlags(t)

	seedPath = filepath.Join(t.TempDir(), "missing.json")
	_, err := buildCollaborators(context.Background(), &config.Config{}, logging.Nop())
	assert.Error(t, err)
}

func TestBuildCollaborators_InvalidSeed(t *testing.T) {
	resetFlags(t)

	seeds := map[string]string{
		"unknown status":  `{"applications": [{"id": 3, "student_id": 30, "job_id": 1, "status": "bogus"}]}`,
		"negative job id": `{"applications": [{"id": 3, "student_id": 30, "job_id": -1}]}`,
		"malformed email": `{"users": [{"id": 1, "name": "Bob", "email": "bob"}]}`,
		"not a seed":      `[1, 2, 3]`,
	}
	for name, seed := range seeds {
		t.Run(name, func(t *testing.T) {
			seedPath = filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o600))

			_, err := buildCollaborators(context.Background(), &config.Config{}, logging.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid seed file")

			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	resetFlags(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HIRING_DATABASE_URL", "")

	rootCmd.SetArgs([]string{"migrate"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}
