package dig_container

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/afthonios/catalog/apps/api/echo"
	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/course"
	logsvc "github.com/afthonios/catalog/services/logger"
	"github.com/afthonios/catalog/storage/cms"
)

func newLogger(conf *core.Config) (*logsvc.RollbarLogger, core.Logger) {
	zapLogger, err := logsvc.NewZapLogger(conf, "API")
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zapLogger, conf)
	logger.Enable(!conf.Debug)
	return logger, logger
}

func newCourseRepository(conf *core.Config, logger core.Logger) course.Repository {
	if path := conf.CMS.FixturesPath; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(conf.WorkDir, path)
		}
		repo, err := cms.NewFixtureRepository(path)
		if err != nil {
			logger.Fatal(fmt.Sprintf("loading course fixtures: %v", err), err)
		}
		logger.Info(fmt.Sprintf("courses loaded from %s", path))
		return repo
	}
	return cms.NewCourseRepository(conf.CMS, &http.Client{})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslators))
	must(c.Provide(newCourseRepository))
	must(c.Provide(course.NewService))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
