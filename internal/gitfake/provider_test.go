package gitfake_test

import (
	"testing"

	"github.com/purpleclay/tidemark/internal/gitfake"
	"github.com/purpleclay/tidemark/internal/providertest"
)

func TestProviderContract(t *testing.T) {
	providertest.Run(t, gitfake.Harness{})
}
