//go:build !faasadapter.partial || (faasadapter.partial && faasadapter.echo)

package adapter

import (
	"context"
	"net/http"

	"github.com/funcbridge/go-faas-http-adapter/handler"
	"github.com/labstack/echo/v4"
)

type echoAdapter struct {
	echo *echo.Echo
}

func (a echoAdapter) adapterFunc(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
	a.echo.ServeHTTP(w, r)
	return nil
}

func NewEchoAdapter(delegate *echo.Echo) handler.AdapterFunc {
	return echoAdapter{delegate}.adapterFunc
}
