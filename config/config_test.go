package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_DB_USER", "app")
	t.Setenv("TEST_DB_NAME", "residence")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "*/15 * * * *", cfg.ReconcileCron)
	assert.Equal(t, 4, cfg.ReconcileWorkers)
	assert.Equal(t, 0.75, cfg.StayNoticeThreshold)
	assert.Equal(t, 24*time.Hour, cfg.CriticalCheckoutWindow)
	assert.Contains(t, cfg.DB.DSN(), "dbname=residence")
	assert.Contains(t, cfg.DB.DSN(), "sslmode=disable")
	assert.True(t, cfg.AutoMigrate)
}

func TestLoad_UnknownEnv(t *testing.T) {
	t.Setenv("ENV", "staging")

	_, err := Load()

	assert.ErrorContains(t, err, "unknown environment")
}

func TestLoad_BadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"RECONCILE_WORKERS", "many"},
		{"STAY_NOTICE_THRESHOLD", "1.5"},
		{"CRITICAL_CHECKOUT_WINDOW", "tomorrow"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("ENV", "test")
			t.Setenv(tc.key, tc.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

func TestProdUsesProdPrefix(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PROD_DB_HOST", "db.internal")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "require", cfg.DB.SSLMode)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestInitApp_SchedulerRecoversPanics(t *testing.T) {
	_, m, c := InitApp(&Config{Env: "test"}, nil)
	defer m.Close()

	done := make(chan struct{})
	var once sync.Once
	_, err := c.AddFunc("@every 1s", func() {
		defer once.Do(func() { close(done) })
		panic("boom")
	})
	require.NoError(t, err)

	c.Start()
	defer c.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
