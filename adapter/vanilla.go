//go:build !faasadapter.partial || (faasadapter.partial && faasadapter.vanilla)

package adapter

import (
	"context"
	"net/http"

	"github.com/funcbridge/go-faas-http-adapter/handler"
)

type vanillaAdapter struct {
	http.Handler
}

func (a vanillaAdapter) adapterFunc(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
	a.ServeHTTP(w, r)
	return nil
}

// NewVanillaAdapter wraps any net/http handler.
func NewVanillaAdapter(delegate http.Handler) handler.AdapterFunc {
	return vanillaAdapter{delegate}.adapterFunc
}
