package e2etests

import (
	"errors"
	"fmt"

	"github.com/btcwallet/e2e-tests/framework"
)

// ErrServiceNotReady is returned by RunTestSuite when a service required by the selected tests
// did not become reachable.
var ErrServiceNotReady = errors.New("required service is not ready")

type testGroup struct {
	name     string
	requires func(Environment) []framework.ServiceTarget
	action   func(*T)
}

func allGroups() []testGroup {
	return []testGroup{
		{
			name:     "BTCWallet service",
			requires: func(e Environment) []framework.ServiceTarget { return []framework.ServiceTarget{e.BTCWallet} },
			action:   DoBTCWalletServiceTests,
		},
		{
			name:     "BTCWallet end-to-end",
			requires: func(e Environment) []framework.ServiceTarget { return []framework.ServiceTarget{e.BTCWallet, e.UI} },
			action:   DoUITests,
		},
		{
			name:     "Quote service",
			requires: func(e Environment) []framework.ServiceTarget { return []framework.ServiceTarget{e.Quote} },
			action:   DoQuoteServiceTests,
		},
		{
			name:     "Translation service",
			requires: func(e Environment) []framework.ServiceTarget { return []framework.ServiceTarget{e.Translation} },
			action:   DoTranslationServiceTests,
		},
	}
}

// RequiredServices returns the services that the groups selected by filter depend on, each
// listed once, in suite order.
func RequiredServices(env Environment, filter framework.Filter) []framework.ServiceTarget {
	var ret []framework.ServiceTarget
	seen := make(map[string]bool)
	for _, g := range allGroups() {
		if filter != nil && !filter(framework.TestID{Path: []string{g.name}}) {
			continue
		}
		for _, target := range g.requires(env) {
			if !seen[target.URL()] {
				seen[target.URL()] = true
				ret = append(ret, target)
			}
		}
	}
	return ret
}

// RunTestSuite waits for every service the selected tests require and then runs the tests. If
// any required service is not ready, no test runs and the error wraps ErrServiceNotReady.
func RunTestSuite(
	env Environment,
	poller framework.Poller,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, error) {
	for _, target := range RequiredServices(env, filter) {
		if !poller.WaitForService(target) {
			return framework.Results{}, fmt.Errorf("%w: %s", ErrServiceNotReady, target)
		}
	}

	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &env)
		for _, g := range allGroups() {
			t.Run(g.name, g.action)
		}
	}), nil
}
