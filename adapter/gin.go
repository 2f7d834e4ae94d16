//go:build !faasadapter.partial || (faasadapter.partial && faasadapter.gin)

package adapter

import (
	"context"
	"net/http"

	"github.com/funcbridge/go-faas-http-adapter/handler"
	"github.com/gin-gonic/gin"
)

type ginAdapter struct {
	engine *gin.Engine
}

func (a ginAdapter) adapterFunc(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
	a.engine.ServeHTTP(w, r)
	return nil
}

func NewGinAdapter(delegate *gin.Engine) handler.AdapterFunc {
	return ginAdapter{delegate}.adapterFunc
}
