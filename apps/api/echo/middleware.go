package echoapi

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/text/language"

	"github.com/afthonios/catalog/core"
)

const localeKey = "locale"

var (
	// supportedTags and supportedLocales are index aligned.
	supportedTags    = []language.Tag{language.French, language.English}
	supportedLocales = []string{core.LocaleFR, core.LocaleEN}
	languageMatcher  = language.NewMatcher(supportedTags)
)

// localeMiddleware stores the request locale in the context: the `locale` query param,
// else the best match of Accept-Language, else defaultLocale.
func localeMiddleware(defaultLocale string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			locale := core.CleanString(ctx.QueryParam(localeKey), true /* lower */)
			if !core.IsLocale(locale) {
				locale = acceptedLocale(ctx.Request().Header.Get("Accept-Language"))
			}
			if locale == "" {
				locale = defaultLocale
			}
			ctx.Set(localeKey, locale)
			return next(ctx)
		}
	}
}

// acceptedLocale returns the supported locale preferred by an Accept-Language header, or "".
func acceptedLocale(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return supportedLocales[idx]
}

func contextLocale(ctx echo.Context) string {
	if locale, ok := ctx.Get(localeKey).(string); ok {
		return locale
	}
	return ""
}

func contextRequestInfo(ctx echo.Context) core.RequestInfo {
	return core.RequestInfo{
		ID:     ctx.Response().Header().Get(echo.HeaderXRequestID),
		Method: ctx.Request().Method,
		Path:   ctx.Request().URL.Path,
		Locale: contextLocale(ctx),
	}
}

func requestLogger(logger core.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRequestID: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info(
				fmt.Sprintf("%s %s %d", v.Method, v.URIPath, v.Status),
				core.RequestInfo{ID: v.RequestID, Method: v.Method, Path: v.URIPath, Locale: contextLocale(ctx)},
				map[string]interface{}{"latency": v.Latency.String()},
			)
			return nil
		},
	})
}
