package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_CMS_BASEURL", "https://cms.example.com/")
	t.Setenv("TEST_CMS_TIMEOUT", "3s")

	conf := NewConfig()

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.True(t, conf.Debug)
	assert.Equal(t, "Catalog", conf.AppName)
	assert.Equal(t, LocaleEN, conf.DefaultLocale) // from config/.env.test, lowered
	assert.True(t, conf.Server.DisableReqLogs)
	assert.Equal(t, ":8000", conf.Server.Address)
	assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, "https://cms.example.com", conf.CMS.BaseURL)
	assert.Equal(t, 3*time.Second, conf.CMS.Timeout)
	assert.Equal(t, "courses", conf.CMS.Collection)
	assert.Equal(t, "config/fixtures/courses.yaml", conf.CMS.FixturesPath)
	assert.Equal(t, Getwd(), conf.WorkDir)
}

func TestNewConfig_Prod(t *testing.T) {
	t.Setenv("ENV", "prod")

	conf := NewConfig()

	assert.Equal(t, "PROD", conf.Env)
	assert.False(t, conf.Debug)
	assert.False(t, conf.TestMode)
	assert.Equal(t, LocaleFR, conf.DefaultLocale)
	assert.Empty(t, conf.CMS.FixturesPath)
}
