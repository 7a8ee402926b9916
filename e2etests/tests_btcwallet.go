package e2etests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

func DoBTCWalletServiceTests(t *T) {
	wallet := t.Env().BTCWallet

	t.Run("has healthy service", func(t *T) {
		resp := t.Get(wallet, "/actuator/health")
		resp.RequireStatus(t, http.StatusOK)
		assert.Equal(t, "UP", resp.RequireJSON(t).GetByKey("status").StringValue(), "unexpected health status")
	})

	t.Run("returns health status from API endpoint", func(t *T) {
		resp := t.Get(wallet, "/api/btcwallet/health")
		assert.Equal(t, http.StatusOK, resp.Status, "unexpected HTTP status")
	})

	t.Run("returns first wallet", func(t *T) {
		resp := t.Get(wallet, "/api/btcwallet/first")
		resp.RequireStatus(t, http.StatusOK)
		AssertHasProperty(t, resp.RequireJSON(t), "address")
	})
}
