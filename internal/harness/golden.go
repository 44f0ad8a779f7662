package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/lextech/dotnetgate/internal/config"
	"github.com/lextech/dotnetgate/internal/engine"
)

// RunWithGolden executes a scenario and compares the rendered report against
// the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario, tables *config.Tables) error {
	t.Helper()

	report, err := Run(s, tables)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, []byte(engine.RenderString(report)))

	return nil
}
