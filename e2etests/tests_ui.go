package e2etests

import (
	"net/http"
)

const walletContainerSelector = `[data-testid="wallet-container"]`

func DoUITests(t *T) {
	t.Run("displays the wallet UI with proper structure", func(t *T) {
		resp := t.Get(t.Env().UI, "/")
		resp.RequireStatus(t, http.StatusOK)
		doc := resp.RequireHTML(t)
		AssertVisible(t, doc.Find(walletContainerSelector), "the wallet container")
	})
}
