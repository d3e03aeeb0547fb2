package config

import (
	"fmt"
	"strings"

	"residence/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp builds the HTTP router, the websocket hub and the cron scheduler.
// The scheduler is returned stopped.
func InitApp(cfg *Config, l logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if l == nil {
		l = logger.Nop()
	}
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	_ = router.SetTrustedProxies(nil)

	m := melody.New()
	m.Config.MaxMessageSize = 1024

	cl := cronLogger{l}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return router, m, c
}

// An empty origin list accepts any origin.
func corsConfig(origins []string) cors.Config {
	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	configCors.AllowCredentials = true
	if len(origins) == 0 {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
		return configCors
	}
	configCors.AllowOrigins = origins
	return configCors
}

// InitWebSocket serves the push channel used for room status and
// notification broadcasts. Clients only listen; inbound messages are dropped.
func InitWebSocket(router *gin.Engine, m *melody.Melody, l logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	m.HandleConnect(func(s *melody.Session) {
		l.Debug("ws connected: %s", s.Request.RemoteAddr)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		l.Debug("ws disconnected: %s", s.Request.RemoteAddr)
	})
	m.HandleError(func(s *melody.Session, err error) {
		l.Warn("ws %s: %v", s.Request.RemoteAddr, err)
	})

	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			l.Warn("ws upgrade: %v", err)
		}
	})
	l.Info("websocket initialized on /ws")
}

// cronLogger feeds cron's key/value logging into logger.Logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: %s%s", msg, formatKV(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: %s: %v%s", msg, err, formatKV(keysAndValues))
}

func formatKV(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
