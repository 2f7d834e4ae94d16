//go:build !faasadapter.partial || (faasadapter.partial && faasadapter.gorillamux)

package adapter

import (
	"context"
	"net/http"

	"github.com/funcbridge/go-faas-http-adapter/handler"
	"github.com/gorilla/mux"
)

type gorillaMuxAdapter struct {
	router *mux.Router
}

func (a gorillaMuxAdapter) adapterFunc(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
	a.router.ServeHTTP(w, r)
	return nil
}

func NewGorillaMuxAdapter(delegate *mux.Router) handler.AdapterFunc {
	return gorillaMuxAdapter{delegate}.adapterFunc
}
