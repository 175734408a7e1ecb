package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotafacil/wallet-core/pkg/handlers/deliveries"
	"github.com/rotafacil/wallet-core/pkg/handlers/wallets"
	"github.com/rotafacil/wallet-core/pkg/handlers/webhooks"
	"github.com/rotafacil/wallet-core/pkg/handlers/withdrawals"
	"github.com/rotafacil/wallet-core/pkg/middleware"
)

// NewRouter mounts every handler on a chi router behind the structured
// request logger.
func NewRouter(
	logger *slog.Logger,
	walletsHandler *wallets.WalletsHandler,
	deliveriesHandler *deliveries.DeliveriesHandler,
	withdrawalsHandler *withdrawals.WithdrawalsHandler,
	webhooksHandler *webhooks.WebhooksHandler,
) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))

	router.Route("/wallets/{ownerType}/{ownerId}", func(r chi.Router) {
		r.Get("/", walletsHandler.GetWallet)
		r.Get("/entries", walletsHandler.ListEntries)
		r.Post("/recharge", walletsHandler.Recharge)
	})

	router.Route("/deliveries", func(r chi.Router) {
		r.Post("/split", deliveriesHandler.ProcessSplit)
		r.Post("/can-request", deliveriesHandler.CanRequest)
	})

	router.Route("/withdrawals", func(r chi.Router) {
		r.Post("/", withdrawalsHandler.Request)
		r.Get("/{withdrawalId}", withdrawalsHandler.Get)
	})

	router.Post("/webhooks/settlement", webhooksHandler.HandleSettlementEvent)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
