package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/afthonios/catalog/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}
	ord.Orderings = core.ParseOrderings(val)
}

// formatParam returns the requested response format: "json" (default) or "html".
func formatParam(ctx echo.Context) (string, error) {
	switch format := core.CleanString(ctx.QueryParam("format"), true /* lower */); format {
	case "", "json":
		return "json", nil
	case "html":
		return format, nil
	default:
		return "", errUnknownFormat
	}
}
