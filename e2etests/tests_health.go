package e2etests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

func DoQuoteServiceTests(t *T) {
	t.Run("has healthy service", func(t *T) {
		resp := t.Get(t.Env().Quote, "/actuator/health")
		resp.RequireStatus(t, http.StatusOK)
		assert.Equal(t, "UP", resp.RequireJSON(t).GetByKey("status").StringValue(), "unexpected health status")
	})
}

func DoTranslationServiceTests(t *T) {
	t.Run("has healthy service", func(t *T) {
		resp := t.Get(t.Env().Translation, "/health")
		assert.Equal(t, http.StatusOK, resp.Status, "unexpected HTTP status")
	})
}
